package access

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleAgent   Role = "AGENT"
	RoleUser    Role = "USER"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleAgent, RoleUser}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

type Resource string

const (
	ResourceProjects   Resource = "projects"
	ResourceUnits      Resource = "units"
	ResourceBuildings  Resource = "buildings"
	ResourceDevelopers Resource = "developers"
	ResourceCurrencies Resource = "currencies"
	ResourceMedia      Resource = "media"
	ResourceImports    Resource = "imports"
	ResourceUsers      Resource = "users"
)

var Resources = []Resource{
	ResourceProjects, ResourceUnits, ResourceBuildings, ResourceDevelopers,
	ResourceCurrencies, ResourceMedia, ResourceImports, ResourceUsers,
}

type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionCreate Action = "create"
	ActionExport Action = "export"
)

var Actions = []Action{ActionView, ActionEdit, ActionDelete, ActionCreate, ActionExport}

type Capability string

const (
	CapNone     Capability = "none"
	CapAssigned Capability = "assigned"
	CapAll      Capability = "all"
)

// Table is the role → resource → action → capability mapping.
type Table map[Role]map[Resource]map[Action]Capability

//go:embed permissions.yaml
var defaultTable []byte

// DefaultTable parses the embedded permission table.
func DefaultTable() (Table, error) {
	return ParseTable(defaultTable)
}

// ParseTable decodes and validates a permission table. Every known role,
// resource and action must be present with a known capability; unknown names
// are rejected.
func ParseTable(raw []byte) (Table, error) {
	var doc map[string]map[string]map[string]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse permission table: %w", err)
	}

	var problems []string
	t := make(Table, len(Roles))
	for roleName, resources := range doc {
		role, ok := ParseRole(roleName)
		if !ok || string(role) != roleName {
			problems = append(problems, fmt.Sprintf("unknown role %q", roleName))
			continue
		}
		t[role] = make(map[Resource]map[Action]Capability, len(Resources))
		for resName, actions := range resources {
			res := Resource(resName)
			if !contains(Resources, res) {
				problems = append(problems, fmt.Sprintf("%s: unknown resource %q", role, resName))
				continue
			}
			t[role][res] = make(map[Action]Capability, len(Actions))
			for actName, capName := range actions {
				act := Action(actName)
				if !contains(Actions, act) {
					problems = append(problems, fmt.Sprintf("%s.%s: unknown action %q", role, res, actName))
					continue
				}
				c := Capability(capName)
				if c != CapNone && c != CapAssigned && c != CapAll {
					problems = append(problems, fmt.Sprintf("%s.%s.%s: unknown capability %q", role, res, act, capName))
					continue
				}
				t[role][res][act] = c
			}
		}
	}

	for _, role := range Roles {
		for _, res := range Resources {
			for _, act := range Actions {
				if _, ok := t[role][res][act]; !ok {
					problems = append(problems, fmt.Sprintf("%s.%s.%s: missing", role, res, act))
				}
			}
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("invalid permission table: %s", strings.Join(problems, "; "))
	}
	return t, nil
}

// Capability looks up what role may do. Unknown roles get CapNone.
func (t Table) Capability(role Role, res Resource, act Action) Capability {
	if c, ok := t[role][res][act]; ok {
		return c
	}
	return CapNone
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
