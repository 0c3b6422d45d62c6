// Package httpapi is the REST transport collaborator spec.md §1 treats as
// out of scope for the core: it turns dispatch.Dispatcher calls into
// gin-gonic routes and JSON payloads (spec.md §6).
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/audit"
	"github.com/oxhq/langserved/internal/dispatch"
	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/graphqlapi"
)

// Server wires the Dispatcher and an optional audit sink behind a gin
// engine.
type Server struct {
	engine *gin.Engine
	d      *dispatch.Dispatcher
	audit  *audit.Log
	logger *zap.Logger
}

// New constructs the gin engine and registers every route spec.md §6 names.
// auditLog may be nil — the operational trail is opt-in (SPEC_FULL.md §2.5).
func New(d *dispatch.Dispatcher, auditLog *audit.Log, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{engine: r, d: d, audit: auditLog, logger: logger}

	r.Use(s.requestIDMiddleware())
	r.Use(s.accessLogMiddleware())

	r.POST("/speller/:lang", s.handleSpelling)
	r.POST("/grammar/:lang", s.handleGrammar)
	r.POST("/hyphenation/:lang", s.handleHyphenation)
	r.GET("/languages", s.handleLanguages)

	gql := graphqlapi.New(d)
	r.POST("/graphql", gin.WrapH(gql.Handler()))
	r.GET("/graphiql", gin.WrapH(graphqlapi.GraphiQLHandler()))

	return s
}

// Handler returns the http.Handler to pass to an http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

type requestIDKey struct{}

// requestIDMiddleware stamps every request with a UUID (spec.md's "process
// logging" collaborator benefits from a correlation id the way the
// teacher's own request tracing does).
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func (s *Server) accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Info("http request",
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func requestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSpelling(c *gin.Context) {
	lang := c.Param("lang")
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInputError(c, err)
		return
	}

	resp, err := s.d.SuggestSpelling(c.Request.Context(), lang, engine.SpellerRequest{Text: req.Text})
	s.recordAudit(c, engine.Spelling, lang, err)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGrammar(c *gin.Context) {
	lang := c.Param("lang")
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInputError(c, err)
		return
	}

	resp, err := s.d.SuggestGrammar(c.Request.Context(), lang, engine.GrammarRequest{Text: req.Text})
	s.recordAudit(c, engine.Grammar, lang, err)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHyphenation(c *gin.Context) {
	lang := c.Param("lang")
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInputError(c, err)
		return
	}

	resp, err := s.d.SuggestHyphenation(c.Request.Context(), lang, engine.HyphenationRequest{Text: req.Text})
	s.recordAudit(c, engine.Hyphenation, lang, err)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": s.d.Available()})
}

func (s *Server) recordAudit(c *gin.Context, kind engine.Kind, lang string, err error) {
	if s.audit == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.audit.Record(c.Request.Context(), requestID(c), kind, lang, outcome)
}

func writeInputError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

func writeDispatchError(c *gin.Context, err error) {
	var derr *dispatch.DispatchError
	if errors.As(err, &derr) {
		switch derr.Kind {
		case dispatch.NoSuchLanguage:
			c.JSON(http.StatusNotFound, gin.H{"error": derr.Error()})
			return
		case dispatch.EngineFault:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal engine error"})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
