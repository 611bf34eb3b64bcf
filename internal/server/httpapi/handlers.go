package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/server/models"
)

// Request bodies are bound into typed command objects up front; optional
// fields are pointers so that an absent field is distinguishable from an
// empty one.
type (
	registerUserRequest struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	createPostRequest struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	updatePostRequest struct {
		ID      *string `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	postResponse struct {
		ID      string    `json:"id"`
		Author  string    `json:"author"`
		Title   string    `json:"title"`
		Content string    `json:"content"`
		Created time.Time `json:"created"`
	}
)

// serializePost is the uniform post serialization used by every endpoint.
// Digest fields never appear in any response.
func serializePost(p *models.BlogPost) postResponse {
	return postResponse{
		ID:      p.ID,
		Author:  p.AuthorName(),
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}

func notFound(ctx context.Context, c *app.RequestContext) {
	c.JSON(404, utils.H{"message": "Not Found"})
}

// registerUser handles POST /users. Registration is unauthenticated.
func (s *Server) registerUser(ctx context.Context, c *app.RequestContext) {
	var req registerUserRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request body"})
		return
	}

	// Report the first missing field by name.
	required := []struct {
		name  string
		value string
	}{
		{"username", req.Username},
		{"password", req.Password},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			c.JSON(400, utils.H{"message": f.name + " is required"})
			return
		}
	}

	user, err := s.users.Register(ctx, req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			c.JSON(422, utils.H{"message": "username already taken"})
			return
		}
		s.logger.Error(ctx, "user registration failed", "error", err.Error())
		c.JSON(500, utils.H{"message": "internal server error"})
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.Username)
	c.JSON(201, utils.H{
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}

// listPosts handles GET /posts.
func (s *Server) listPosts(ctx context.Context, c *app.RequestContext) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing posts failed", "error", err.Error())
		c.JSON(500, utils.H{"error": "internal server error"})
		return
	}

	result := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, serializePost(p))
	}
	c.JSON(200, result)
}

// getPost handles GET /posts/:id.
func (s *Server) getPost(ctx context.Context, c *app.RequestContext) {
	post, err := s.posts.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(404, utils.H{"error": "post not found"})
			return
		}
		s.logger.Error(ctx, "fetching post failed", "error", err.Error())
		c.JSON(500, utils.H{"error": "internal server error"})
		return
	}
	c.JSON(200, serializePost(post))
}

// createPost handles POST /posts. The author is the authenticated identity;
// anything author-like in the request body is ignored.
func (s *Server) createPost(ctx context.Context, c *app.RequestContext) {
	ident, ok := identityFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req createPostRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "invalid request body"})
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		c.JSON(400, utils.H{"error": "title is required"})
		return
	}
	if req.Content == nil {
		c.JSON(400, utils.H{"error": "content is required"})
		return
	}

	post, err := s.posts.Create(ctx, ident, *req.Title, *req.Content)
	if err != nil {
		s.logger.Error(ctx, "creating post failed", "error", err.Error())
		c.JSON(500, utils.H{"error": "internal server error"})
		return
	}

	s.logger.Info(ctx, "post created", "id", post.ID, "author", post.AuthorName())
	c.JSON(201, serializePost(post))
}

// updatePost handles PUT /posts/:id. The body id must match the path id;
// only title and content present in the body are applied.
func (s *Server) updatePost(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	var req updatePostRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "invalid request body"})
		return
	}
	if req.ID == nil || *req.ID != id {
		c.JSON(400, utils.H{"error": "id mismatch"})
		return
	}

	post, err := s.posts.Update(ctx, id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(404, utils.H{"error": "post not found"})
			return
		}
		s.logger.Error(ctx, "updating post failed", "error", err.Error())
		c.JSON(500, utils.H{"message": "internal server error"})
		return
	}

	c.JSON(201, serializePost(post))
}

// deletePost handles DELETE /posts/:id. Responds 204 whether or not a
// record existed.
func (s *Server) deletePost(ctx context.Context, c *app.RequestContext) {
	if _, err := s.posts.Delete(ctx, c.Param("id")); err != nil {
		s.logger.Error(ctx, "deleting post failed", "error", err.Error())
		c.JSON(500, utils.H{"error": "internal server error"})
		return
	}
	c.SetStatusCode(204)
}
