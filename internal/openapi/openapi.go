// Package openapi renders the machine-readable description of the REST
// surface served at /.well-known/openapi.yaml.
package openapi

import (
	"sync"

	"gopkg.in/yaml.v3"
)

type Document struct {
	OpenAPI string               `yaml:"openapi"`
	Info    Info                 `yaml:"info"`
	Servers []Server             `yaml:"servers,omitempty"`
	Paths   map[string]*PathItem `yaml:"paths"`
}

type Info struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version"`
}

type Server struct {
	URL string `yaml:"url"`
}

type PathItem struct {
	Get *Operation `yaml:"get,omitempty"`
}

type Operation struct {
	Summary    string              `yaml:"summary"`
	Parameters []Parameter         `yaml:"parameters,omitempty"`
	Responses  map[string]Response `yaml:"responses"`
}

type Parameter struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Schema      Schema `yaml:"schema"`
}

type Schema struct {
	Type string `yaml:"type"`
}

type Response struct {
	Description string `yaml:"description"`
}

var (
	once      sync.Once
	rendered  []byte
	renderErr error
)

// YAML returns the document serialized once and cached for the process
// lifetime; the surface is static.
func YAML() ([]byte, error) {
	once.Do(func() {
		rendered, renderErr = yaml.Marshal(document())
	})
	return rendered, renderErr
}

func queryParam(name, desc string, required bool) Parameter {
	return Parameter{Name: name, In: "query", Description: desc, Required: required, Schema: Schema{Type: "string"}}
}

func intQueryParam(name, desc string) Parameter {
	return Parameter{Name: name, In: "query", Description: desc, Schema: Schema{Type: "integer"}}
}

func pathParam(name, desc string) Parameter {
	return Parameter{Name: name, In: "path", Description: desc, Required: true, Schema: Schema{Type: "string"}}
}

func okJSON(desc string) map[string]Response {
	return map[string]Response{"200": {Description: desc}}
}

func document() *Document {
	regulation := queryParam("regulation", "Restrict results to a single regulation, e.g. H", false)
	limit := intQueryParam("limit", "Maximum number of results")

	return &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "VGC Team Finder",
			Description: "Search, statistics and recommendations over competitive VGC team compositions collected from public tournament spreadsheets.",
			Version:     "2.0.0",
		},
		Paths: map[string]*PathItem{
			"/api/search": {Get: &Operation{
				Summary: "Search teams by Pokemon, item, player, event or free text",
				Parameters: []Parameter{
					queryParam("q", "Search query; combine terms with 'and'", true),
					regulation,
					intQueryParam("min_placement", "Only teams that placed at or above this tier"),
					queryParam("sort", "recent or oldest", false),
					limit,
				},
				Responses: okJSON("Matching teams with total count"),
			}},
			"/api/random": {Get: &Operation{
				Summary:    "A random team, optionally within a regulation",
				Parameters: []Parameter{regulation},
				Responses:  okJSON("One team"),
			}},
			"/api/rental/{code}": {Get: &Operation{
				Summary:    "Look up a team by its 6-character rental code",
				Parameters: []Parameter{pathParam("code", "Rental code")},
				Responses: map[string]Response{
					"200": {Description: "The team"},
					"404": {Description: "No team with that code"},
				},
			}},
			"/api/rentals": {Get: &Operation{
				Summary:    "Recent teams that include a rental code",
				Parameters: []Parameter{regulation, limit},
				Responses:  okJSON("Teams with rental codes"),
			}},
			"/api/usage": {Get: &Operation{
				Summary:    "Pokemon usage statistics",
				Parameters: []Parameter{regulation, limit},
				Responses:  okJSON("Usage entries sorted by count"),
			}},
			"/api/items": {Get: &Operation{
				Summary:    "Held item usage statistics",
				Parameters: []Parameter{regulation, limit},
				Responses:  okJSON("Item usage entries"),
			}},
			"/api/items/{pokemon}": {Get: &Operation{
				Summary:    "Items most commonly held by a Pokemon",
				Parameters: []Parameter{pathParam("pokemon", "Pokemon name or abbreviation"), regulation, limit},
				Responses:  okJSON("Item entries for the Pokemon"),
			}},
			"/api/teammates/{pokemon}": {Get: &Operation{
				Summary:    "Most common teammates of a Pokemon",
				Parameters: []Parameter{pathParam("pokemon", "Pokemon name or abbreviation"), regulation, limit},
				Responses:  okJSON("Teammate entries"),
			}},
			"/api/regulations": {Get: &Operation{
				Summary:   "Known regulations and team counts",
				Responses: okJSON("Regulation counts"),
			}},
			"/api/player/{name}": {Get: &Operation{
				Summary:    "Teams published by a player",
				Parameters: []Parameter{pathParam("name", "Player name, partial match"), limit},
				Responses:  okJSON("The player's teams"),
			}},
			"/api/tournament": {Get: &Operation{
				Summary: "Teams from events matching a name",
				Parameters: []Parameter{
					queryParam("event", "Event name, partial match", true),
					regulation,
					limit,
				},
				Responses: okJSON("Tournament teams"),
			}},
			"/api/similar": {Get: &Operation{
				Summary: "Teams sharing Pokemon with a given core",
				Parameters: []Parameter{
					queryParam("pokemon", "Comma-separated Pokemon names", true),
					regulation,
					intQueryParam("min_shared", "Minimum shared Pokemon"),
					limit,
				},
				Responses: okJSON("Similar teams with shared counts"),
			}},
			"/api/recommend": {Get: &Operation{
				Summary: "Recommend teams for a free-text description",
				Parameters: []Parameter{
					queryParam("description", "What you want to play, e.g. 'rain with Incineroar'", true),
					regulation,
					limit,
				},
				Responses: okJSON("Scored recommendations with reasons"),
			}},
		},
	}
}
