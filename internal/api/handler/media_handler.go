package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airhost/ops/internal/api/metrics"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// MediaHandler serves images and their comments.
type MediaHandler struct {
	images   ports.ImageService
	comments ports.CommentService
}

func NewMediaHandler(images ports.ImageService, comments ports.CommentService) *MediaHandler {
	return &MediaHandler{images: images, comments: comments}
}

// ListImages handles GET /v1/images?orderId=.
//
// @Summary      List images of an order
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  query     string  true  "Order id"
// @Success      200      {object}  imagesResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/images [get]
func (h *MediaHandler) ListImages(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	orderID := queryParam(c, "orderId", "order_id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId is required")
	}

	images, err := h.images.List(c.Request().Context(), actor, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imagesResponse{Images: images})
}

// CreateImage handles POST /v1/images with an already hosted URL.
//
// @Summary      Attach an image by URL
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createImageRequest  true  "Image"
// @Success      201   {object}  domain.Image
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/images [post]
func (h *MediaHandler) CreateImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createImageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	img, err := h.images.Create(c.Request().Context(), actor, ports.CreateImageInput{
		OrderID: req.OrderID,
		URL:     req.URL,
		Caption: req.Caption,
		Kind:    domain.ImageKind(req.Kind),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, img)
}

// UploadImage handles POST /v1/images/upload (multipart: file, orderId, caption, kind).
//
// @Summary      Upload an image file
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file     formData  file    true   "Image (jpeg, png, webp)"
// @Param        orderId  formData  string  true   "Order id"
// @Param        caption  formData  string  false  "Caption"
// @Param        kind     formData  string  false  "before or after"
// @Success      201      {object}  domain.Image
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/images/upload [post]
func (h *MediaHandler) UploadImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	orderID := formValue(c, "orderId", "order_id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId is required")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is unreadable").SetInternal(err)
	}
	defer src.Close()

	img, err := h.images.Upload(c.Request().Context(), actor, ports.UploadImageInput{
		OrderID: orderID,
		Caption: c.FormValue("caption"),
		Kind:    domain.ImageKind(c.FormValue("kind")),
		File: ports.BlobObject{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        src,
		},
	})
	if err != nil {
		return err
	}
	metrics.ImagesUploadedTotal.Inc()
	return c.JSON(http.StatusCreated, img)
}

// UpdateImage handles PUT /v1/images/:id.
//
// @Summary      Edit caption or kind
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Image id"
// @Param        body  body      updateImageRequest  true  "Fields to change"
// @Success      200   {object}  domain.Image
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/images/{id} [put]
func (h *MediaHandler) UpdateImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateImageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := ports.ImageUpdate{Caption: req.Caption}
	if req.Kind != nil {
		kind := domain.ImageKind(*req.Kind)
		upd.Kind = &kind
	}

	img, err := h.images.Update(c.Request().Context(), actor, c.Param("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, img)
}

// DeleteImage handles DELETE /v1/images/:id.
//
// @Summary      Delete an image and its comments
// @Tags         images
// @Security     BearerAuth
// @Param        id   path  string  true  "Image id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/images/{id} [delete]
func (h *MediaHandler) DeleteImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.images.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListComments handles GET /v1/comments?imageId=.
//
// @Summary      List comments of an image
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        imageId  query     string  true  "Image id"
// @Success      200      {object}  commentsResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/comments [get]
func (h *MediaHandler) ListComments(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	imageID := queryParam(c, "imageId", "image_id")
	if imageID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "imageId is required")
	}

	comments, err := h.comments.List(c.Request().Context(), actor, imageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentsResponse{Comments: comments})
}

// CreateComment handles POST /v1/comments.
//
// @Summary      Comment on an image
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/comments [post]
func (h *MediaHandler) CreateComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Create(c.Request().Context(), actor, req.ImageID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment handles PUT /v1/comments/:id.
//
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Comment id"
// @Param        body  body      updateCommentRequest  true  "New text"
// @Success      200   {object}  domain.Comment
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/comments/{id} [put]
func (h *MediaHandler) UpdateComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Update(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /v1/comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/comments/{id} [delete]
func (h *MediaHandler) DeleteComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// queryParam returns the first non-empty query value among names.
func queryParam(c echo.Context, names ...string) string {
	for _, n := range names {
		if v := c.QueryParam(n); v != "" {
			return v
		}
	}
	return ""
}

func formValue(c echo.Context, names ...string) string {
	for _, n := range names {
		if v := c.FormValue(n); v != "" {
			return v
		}
	}
	return ""
}
