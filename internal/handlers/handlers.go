package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/handlers/middleware"
	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	services     *service.Services
	bootstrapKey string
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services *service.Services, bootstrapKey string) *Handlers {
	return &Handlers{services: services, bootstrapKey: bootstrapKey}
}

// RegisterRoutes registers all routes with the Echo instance
func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	auth := middleware.RequireAuth(h.services.Tokens)
	optionalAuth := middleware.OptionalAuth(h.services.Tokens)
	admin := middleware.RequireAdmin()

	// Accounts
	user := e.Group("/user")
	user.POST("/register/", h.Register)
	user.POST("/login/", h.Login)
	user.GET("/", h.GetUser, auth)
	user.PUT("/", h.UpdateUser, auth)
	user.PUT("/admin/", h.UpdateUserRole, auth, admin)
	user.DELETE("/", h.DeleteUser, auth)
	user.GET("/artist/", h.GetArtist, optionalAuth)
	user.GET("/image/", h.GetUserImage, optionalAuth)
	user.PUT("/image/", h.UpdateUserImage, auth)
	user.DELETE("/image/", h.DeleteUserImage, auth)

	user.POST("/subscribe", h.Subscribe, auth)
	user.POST("/unsubscribe", h.Unsubscribe, auth)
	user.GET("/subscriptions", h.GetSubscriptions, auth)
	user.GET("/subscribers", h.GetSubscribers, auth)
	user.GET("/subscriber-count", h.GetSubscriberCount, optionalAuth)

	users := e.Group("/users")
	users.GET("/", h.SearchUsers, auth, admin)
	users.GET("/artist/", h.SearchArtists)

	// Albums
	album := e.Group("/album")
	album.POST("/", h.CreateAlbum, auth)
	album.GET("/", h.GetAlbum)
	album.PUT("/", h.UpdateAlbum, auth)
	album.DELETE("/", h.DeleteAlbum, auth)
	album.GET("/image/", h.GetAlbumImage)
	album.PUT("/image/", h.UpdateAlbumImage, auth)
	album.DELETE("/image/", h.DeleteAlbumImage, auth)
	e.GET("/albums/", h.SearchAlbums)

	// Tracks
	track := e.Group("/track")
	track.POST("/", h.CreateTrack, auth)
	track.POST("/single/", h.CreateSingle, auth)
	track.GET("/", h.GetTrack)
	track.GET("/stream/", h.StreamTrack)
	track.PUT("/", h.UpdateTrack, auth)
	track.PUT("/file/", h.UpdateTrackFile, auth)
	track.DELETE("/", h.DeleteTrack, auth)
	track.GET("/image/", h.GetTrackImage)
	track.PUT("/image/", h.UpdateTrackImage, auth)
	track.DELETE("/image/", h.DeleteTrackImage, auth)
	e.GET("/tracks/", h.SearchTracks)

	// Genres
	genre := e.Group("/genre")
	genre.POST("/", h.CreateGenre, auth)
	genre.GET("/", h.GetGenre)
	genre.PUT("/", h.UpdateGenre, auth)
	genre.DELETE("/", h.DeleteGenre, auth)
	e.GET("/genres/", h.SearchGenres)

	// Playlists
	playlist := e.Group("/playlist")
	playlist.POST("/", h.CreatePlaylist, auth)
	playlist.GET("/", h.GetPlaylist)
	playlist.PUT("/", h.UpdatePlaylist, auth)
	playlist.DELETE("/", h.DeletePlaylist, auth)
	playlist.GET("/image/", h.GetPlaylistImage)
	playlist.PUT("/image/", h.UpdatePlaylistImage, auth)
	playlist.DELETE("/image/", h.DeletePlaylistImage, auth)
	playlist.POST("/track/", h.AddTrackToPlaylist, auth)
	playlist.DELETE("/track/", h.RemoveTrackFromPlaylist, auth)
	e.GET("/playlists/", h.SearchPlaylists)

	// Queue
	queue := e.Group("/track_queue", auth)
	queue.POST("/left", h.QueuePushLeft)
	queue.POST("/right", h.QueuePushRight)
	queue.GET("/", h.QueueList)
	queue.DELETE("/", h.QueueDelete)
	queue.PATCH("/insert", h.QueueInsert)
	queue.PATCH("/move", h.QueueMove)
	queue.PATCH("/remove", h.QueueRemove)

	// Admin bootstrap
	e.POST("/admin/bootstrap-admin", h.BootstrapAdmin)

	// Telemetry
	activity := e.Group("/user_activity")
	activity.POST("/", h.AddActivity)
	activity.GET("/:id", h.GetActivity)
	activity.POST("/list", h.ListActivities)
	activity.POST("/delete", h.DeleteActivities)
	activity.GET("/most-played", h.MostPlayedTracks, auth)
	activity.GET("/daily-active-users", h.DailyActiveUsers, auth)
	activity.GET("/completion-rate", h.TracksCompletionRate, auth)
}

// handleError converts errors to appropriate HTTP responses
func handleError(c echo.Context, err error) error {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.StatusCode, models.NewErrorResponse(apiErr))
	}
	return c.JSON(http.StatusInternalServerError, models.NewErrorResponse(models.ErrInternalServer))
}

// bindAndValidate binds the request and validates it. Echo only considers
// query parameters for GET, DELETE, and HEAD, but ids and filters here may
// arrive by query on any verb, so they are bound explicitly for the rest.
func bindAndValidate(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return models.ErrBadRequest
	}
	switch c.Request().Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
	default:
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, v); err != nil {
			return models.ErrBadRequest
		}
	}
	if err := c.Validate(v); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// principal returns the caller stored by the auth middleware, failing with
// Unauthorized when none is present.
func principal(c echo.Context) (authz.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return authz.Principal{}, models.ErrUnauthorized
	}
	return p, nil
}

// success returns a JSON success response
func success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// created returns a JSON response with 201 status
func created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// noContent returns a 204 No Content response
func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// pngResponse serves raw image bytes.
func pngResponse(c echo.Context, data []byte) error {
	return c.Blob(http.StatusOK, "image/png", data)
}

// readFormFile reads a required multipart file field.
func readFormFile(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", models.NewValidationError(field + " file is required")
	}
	return readMultipartFile(fh)
}

// readOptionalFormFile reads a multipart file field that may be absent or
// sent as an empty form value.
func readOptionalFormFile(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	return readMultipartFile(fh)
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", models.ErrBadRequest
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", models.ErrBadRequest
	}
	return data, fh.Header.Get("Content-Type"), nil
}

// requireID fails with a validation error when an id field was not sent.
func requireID(id *int64) (int64, error) {
	if id == nil {
		return 0, models.NewValidationError("id is required")
	}
	return *id, nil
}
