// Package httpapi exposes the REST surface of the blog service: public post
// reads and user registration, plus post writes gated by HTTP Basic
// credential checks against the credential store.
package httpapi

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/akarpov/miniblog/internal/logging"
	"github.com/akarpov/miniblog/internal/server/models"
)

// UserProvider is the slice of the user service used by the transport.
type UserProvider interface {
	Register(ctx context.Context, username, password, firstName, lastName string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.Identity, error)
}

// PostProvider is the slice of the post service used by the transport.
type PostProvider interface {
	List(ctx context.Context) ([]*models.BlogPost, error)
	Get(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, ident *models.Identity, title, content string) (*models.BlogPost, error)
	Update(ctx context.Context, id string, title, content *string) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Server is an explicit HTTP server lifecycle object: construct it, register
// its routes, run it, and stop it by cancelling the context passed to Run.
type Server struct {
	address string
	logger  logging.Logger
	users   UserProvider
	posts   PostProvider
}

func NewServer(address string, l logging.Logger, users UserProvider, posts PostProvider) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "httpapi"),
		users:   users,
		posts:   posts,
	}
}

// RegisterRoutes attaches middleware and the endpoint table to a Hertz
// instance. Post reads and user registration are public; post writes pass
// through the Basic auth gate first.
func (s *Server) RegisterRoutes(h *server.Hertz) {
	h.Use(
		s.recoveryMiddleware(),
		s.requestLogMiddleware(),
		corsMiddleware(),
	)

	h.POST("/users", s.registerUser)

	h.GET("/posts", s.listPosts)
	h.GET("/posts/:id", s.getPost)

	auth := s.basicAuthMiddleware()
	h.POST("/posts", auth, s.createPost)
	h.PUT("/posts/:id", auth, s.updatePost)
	h.DELETE("/posts/:id", auth, s.deletePost)

	h.NoRoute(notFound)
	h.NoMethod(notFound)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	h := server.New(
		server.WithHostPorts(s.address),
		server.WithHandleMethodNotAllowed(true),
	)
	s.RegisterRoutes(h)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = h.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return h.Run()
}
