// Package graphqlapi is the GraphQL façade spec.md §6 requires alongside
// the REST endpoints: a single `suggestions(text, language)` query with
// sub-selections mirroring the REST payloads. Built on graphql-go/graphql,
// the closest Go analogue to the juniper schema the original source used
// for the same purpose.
package graphqlapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/oxhq/langserved/internal/dispatch"
	"github.com/oxhq/langserved/internal/engine"
)

// API holds the compiled schema and the Dispatcher it queries.
type API struct {
	schema graphql.Schema
}

// New builds the GraphQL schema over d.
func New(d *dispatch.Dispatcher) *API {
	schema, err := buildSchema(d)
	if err != nil {
		// The schema is static; a build failure here is a programming
		// error, not a runtime condition a caller can recover from.
		panic(err)
	}
	return &API{schema: schema}
}

func buildSchema(d *dispatch.Dispatcher) (graphql.Schema, error) {
	suggestionValueType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SuggestionValue",
		Fields: graphql.Fields{
			"value":  &graphql.Field{Type: graphql.String},
			"weight": &graphql.Field{Type: graphql.Float},
		},
	})

	spellerWordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SpellerWordResult",
		Fields: graphql.Fields{
			"word":        &graphql.Field{Type: graphql.String},
			"isCorrect":   &graphql.Field{Type: graphql.Boolean},
			"suggestions": &graphql.Field{Type: graphql.NewList(suggestionValueType)},
		},
	})

	spellerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SpellerResult",
		Fields: graphql.Fields{
			"text":    &graphql.Field{Type: graphql.String},
			"results": &graphql.Field{Type: graphql.NewList(spellerWordType)},
		},
	})

	grammarSuggestionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GrammarSuggestion",
		Fields: graphql.Fields{
			"value": &graphql.Field{Type: graphql.String},
		},
	})

	grammarErrorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GrammarError",
		Fields: graphql.Fields{
			"errorText":   &graphql.Field{Type: graphql.String},
			"startIndex":  &graphql.Field{Type: graphql.Int},
			"endIndex":    &graphql.Field{Type: graphql.Int},
			"errorCode":   &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"suggestions": &graphql.Field{Type: graphql.NewList(grammarSuggestionType)},
		},
	})

	grammarType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GrammarResult",
		Fields: graphql.Fields{
			"text": &graphql.Field{Type: graphql.String},
			"errs": &graphql.Field{Type: graphql.NewList(grammarErrorType)},
		},
	})

	hyphWordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "HyphenationWordResult",
		Fields: graphql.Fields{
			"word":  &graphql.Field{Type: graphql.String},
			"parts": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	hyphType := graphql.NewObject(graphql.ObjectConfig{
		Name: "HyphenationResult",
		Fields: graphql.Fields{
			"text":    &graphql.Field{Type: graphql.String},
			"results": &graphql.Field{Type: graphql.NewList(hyphWordType)},
		},
	})

	suggestionsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Suggestions",
		Fields: graphql.Fields{
			"speller":     &graphql.Field{Type: spellerType},
			"grammar":     &graphql.Field{Type: grammarType},
			"hyphenation": &graphql.Field{Type: hyphType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"suggestions": &graphql.Field{
				Type: suggestionsType,
				Args: graphql.FieldConfigArgument{
					"text":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"language": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolveSuggestions(d),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// suggestionBundle is what the suggestions resolver returns; each field is
// nil if its dispatch call failed (NoSuchLanguage or EngineFault), so one
// kind's absence doesn't fail the whole query.
type suggestionBundle struct {
	Speller     *engine.SpellerResponse     `json:"speller"`
	Grammar     *engine.GrammarResponse     `json:"grammar"`
	Hyphenation *engine.HyphenationResponse `json:"hyphenation"`
}

func resolveSuggestions(d *dispatch.Dispatcher) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		text, _ := p.Args["text"].(string)
		language, _ := p.Args["language"].(string)
		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}

		bundle := suggestionBundle{}

		if resp, err := d.SuggestSpelling(ctx, language, engine.SpellerRequest{Text: text}); err == nil {
			bundle.Speller = &resp
		}
		if resp, err := d.SuggestGrammar(ctx, language, engine.GrammarRequest{Text: text}); err == nil {
			bundle.Grammar = &resp
		}
		if resp, err := d.SuggestHyphenation(ctx, language, engine.HyphenationRequest{Text: text}); err == nil {
			bundle.Hyphenation = &resp
		}

		return bundle, nil
	}
}

// Handler serves POST /graphql: decode {query, variables}, execute, encode result.
func (a *API) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid graphql request body", http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         a.schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	})
}

// GraphiQLHandler serves a minimal static GraphiQL page at /graphiql.
func GraphiQLHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(graphiqlPage))
	})
}

const graphiqlPage = `<!DOCTYPE html>
<html>
<head>
  <title>langserved GraphiQL</title>
  <link href="https://unpkg.com/graphiql/graphiql.min.css" rel="stylesheet" />
</head>
<body style="margin:0;">
  <div id="graphiql" style="height:100vh;"></div>
  <script src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
    ReactDOM.render(
      React.createElement(GraphiQL, { fetcher }),
      document.getElementById('graphiql'),
    );
  </script>
</body>
</html>`
