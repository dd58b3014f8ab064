// httpclient/organization.go
package httpclient

import (
	"context"

	"github.com/deploymenttheory/go-api-sdk-billforward/response"
)

// OrganizationEndpoint lists the organisations the authenticated user belongs to.
const OrganizationEndpoint = "organizations/mine"

// OrganizationID returns the id of the caller's first organisation. The id is fetched once and
// cached; an empty result is not cached.
func (c *Client) OrganizationID(ctx context.Context) (string, error) {
	c.orgLock.Lock()
	defer c.orgLock.Unlock()

	if c.organizationID != "" {
		return c.organizationID, nil
	}

	organizations, err := c.Get(ctx, OrganizationEndpoint, nil)
	if err != nil {
		return "", err
	}

	first, ok := response.FirstResult(organizations)
	if !ok {
		return "", nil
	}

	organization, ok := first.(map[string]any)
	if !ok {
		return "", nil
	}

	id, _ := organization["id"].(string)
	c.organizationID = id

	return id, nil
}
