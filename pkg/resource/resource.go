// Package resource provides API resource transformers.
//
// Define a Resource to control exactly what JSON shape the API returns:
//
//	type UserResource struct{ resource.Base }
//	func (r *UserResource) ToArray(v interface{}) resource.Map {
//	    u := v.(models.User)
//	    return resource.Map{
//	        "id":        u.ID,
//	        "full_name": u.FullName,
//	        "email":     u.Email,
//	    }
//	}
//
// Respond:
//
//	resource.New(&UserResource{}, user).Respond(w)
//	resource.CollectionOf(&UserResource{}, users).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/ucqdev/cuahquick/pkg/orm"
)

// Map is a convenient alias for the output of ToArray.
type Map = map[string]interface{}

// Transformer defines the single method a Resource must implement.
type Transformer interface {
	// ToArray converts one model instance into a Map.
	ToArray(v interface{}) Map
}

// Base can be embedded in any Resource to satisfy future extension points.
type Base struct{}

// Resource wraps a single model with its transformer.
type Resource struct {
	transformer Transformer
	data        interface{}
	meta        Map
}

// New creates a Resource for a single model instance.
func New(t Transformer, data interface{}) *Resource {
	return &Resource{transformer: t, data: data}
}

// WithMeta attaches additional metadata to the response envelope.
func (r *Resource) WithMeta(meta Map) *Resource {
	r.meta = meta
	return r
}

// Transform returns the transformed map without writing a response.
func (r *Resource) Transform() Map {
	return r.transformer.ToArray(r.data)
}

// MarshalJSON implements json.Marshaler so Resource can be nested.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transformer.ToArray(r.data))
}

// Respond writes the resource as JSON with status 200.
func (r *Resource) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transformer.ToArray(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// Collection wraps a slice of models with a transformer.
type Collection struct {
	transformer Transformer
	items       interface{}
	pagination  *orm.Pagination
	meta        Map
}

// CollectionOf creates a Collection from a slice (passed as interface{}).
// items should be a []SomeModel.
func CollectionOf(t Transformer, items interface{}) *Collection {
	return &Collection{transformer: t, items: items}
}

// WithPagination attaches pagination metadata.
func (c *Collection) WithPagination(p orm.Pagination) *Collection {
	c.pagination = &p
	return c
}

// WithMeta attaches extra metadata.
func (c *Collection) WithMeta(meta Map) *Collection {
	c.meta = meta
	return c
}

// Transform returns the transformed slice without writing a response.
// Each element is passed to the transformer as its concrete model value.
func (c *Collection) Transform() []Map {
	rv := reflect.ValueOf(c.items)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return []Map{}
	}

	out := make([]Map, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, c.transformer.ToArray(rv.Index(i).Interface()))
	}
	return out
}

// Respond writes the collection as JSON with status 200.
func (c *Collection) Respond(w http.ResponseWriter) {
	out := Map{"data": c.Transform()}
	if c.pagination != nil {
		out["pagination"] = c.pagination
	}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
