// controllers/service.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// ServiceController manages the service menu. Create and update accept JSON
// or a multipart form with an optional "image" file.
type ServiceController struct {
	Catalog   *services.CatalogService
	UploadDir string
	Log       logrus.FieldLogger
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// saveImage stores the uploaded image and returns its public path, or "" when
// no file was sent.
func (sc *ServiceController) saveImage(c *gin.Context) (string, error) {
	if !isMultipart(c) {
		return "", nil
	}
	file, err := c.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	if err := os.MkdirAll(sc.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(sc.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// discardImage removes an upload whose create or update was rejected.
func (sc *ServiceController) discardImage(image string) {
	if image == "" {
		return
	}
	path := filepath.Join(sc.UploadDir, filepath.Base(image))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		sc.Log.WithError(err).WithField("path", path).Warn("failed to remove rejected upload")
	}
}

func (sc *ServiceController) bind(c *gin.Context, obj interface{}) error {
	if isMultipart(c) {
		return c.ShouldBind(obj)
	}
	return c.ShouldBindJSON(obj)
}

func (sc *ServiceController) Create(c *gin.Context) {
	var input services.CreateServiceInput
	if err := sc.bind(c, &input); err != nil {
		respondBindError(c, err)
		return
	}
	image, err := sc.saveImage(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
		return
	}
	input.Image = image

	service, err := sc.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		sc.discardImage(image)
		respondError(c, sc.Log, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) List(c *gin.Context) {
	list, err := sc.Catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (sc *ServiceController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}
	service, err := sc.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}
	var input services.UpdateServiceInput
	if err := sc.bind(c, &input); err != nil {
		respondBindError(c, err)
		return
	}
	image, err := sc.saveImage(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
		return
	}
	input.Image = image

	service, err := sc.Catalog.Update(c.Request.Context(), id, input)
	if err != nil {
		sc.discardImage(image)
		respondError(c, sc.Log, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}
	if err := sc.Catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, sc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
