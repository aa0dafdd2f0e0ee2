package actions

import "fmt"

// Action is an opaque capability supplied by the host application. The
// core never inspects what an action does; it only invokes it.
type Action struct {
	ID       string
	Title    string
	Callback func() error
	Toggled  func() bool // optional toggle-state query, nil when not applicable
}

// Catalog indexes the host application's actions by id for binding
// resolution. Built once from the ordered action list the host supplies.
type Catalog struct {
	byID map[string]*Action
}

// NewCatalog builds an index from an ordered action list. Duplicate
// action ids are rejected so that resolution stays deterministic.
func NewCatalog(available []Action) (*Catalog, error) {
	byID := make(map[string]*Action, len(available))
	for i := range available {
		action := &available[i]
		if action.ID == "" {
			return nil, fmt.Errorf("action %q has an empty id", action.Title)
		}
		if _, ok := byID[action.ID]; ok {
			return nil, fmt.Errorf("duplicate action id %q", action.ID)
		}
		byID[action.ID] = action
	}
	return &Catalog{byID: byID}, nil
}

// Get returns the action with the given id, if the catalog has one.
func (c *Catalog) Get(id string) (*Action, bool) {
	action, ok := c.byID[id]
	return action, ok
}
