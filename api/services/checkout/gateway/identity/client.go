package identitygw

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gw "github.com/cramerservices/plans-api/api/services/checkout/gateway"
)

// client verifies bearer tokens against the identity provider's user endpoint.
type client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New returns an IdentityGateway talking to the given identity provider.
func New(baseURL, apiKey string) gw.IdentityGateway {
	return client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c client) Authenticate(bearerToken string) (gw.Identity, error) {
	token := strings.TrimSpace(bearerToken)
	if token == "" {
		return gw.Identity{}, errors.New("missing bearer token")
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return gw.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return gw.Identity{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gw.Identity{}, fmt.Errorf("identity provider rejected token: status %d", resp.StatusCode)
	}

	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return gw.Identity{}, fmt.Errorf("error decoding identity response: %w", err)
	}
	if body.ID == "" {
		return gw.Identity{}, errors.New("identity response missing user id")
	}
	return gw.Identity{UserID: body.ID, Email: body.Email}, nil
}
