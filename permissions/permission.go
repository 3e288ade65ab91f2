// Package permissions holds the embedded route table consulted by the auth
// and RBAC middlewares. Routes are keyed by method and chi route pattern.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"rentopia/shared/constant"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleUser, constant.RoleAdmin, constant.RoleSuperAdmin}

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	// Skip routes never look at the token.
	Skip bool `json:"skip"`
	// Optional routes run anonymously when the caller has no valid token.
	Optional bool `json:"optional"`
}

// Allows reports whether role may call the route. An empty role list admits
// any authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions returns the zero Permission for unknown routes.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		if idx, ok := r.index[routeKey(method, path)]; ok {
			return r.Endpoints[idx]
		}

		return Permission{}
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})
	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Parse decodes a route table, rejecting duplicate routes and unknown roles.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	data.index = make(map[string]int, len(data.Endpoints))

	for idx, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission entry for %s", key)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("unknown role %q on %s", role, key)
			}
		}

		data.index[key] = idx
	}

	return &data, nil
}

// Get loads the embedded table. A broken table stops the process.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}
