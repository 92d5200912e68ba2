package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recert-portal-api/blob"
	"recert-portal-api/flow"
	"recert-portal-api/middleware"
	"recert-portal-api/models"
	"recert-portal-api/store"
)

// Accepted upload types. Content sniffing beyond the declared type is the
// storage layer's concern; this list just rejects the obviously wrong.
var acceptedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/heic":      true,
}

// UploadController manages the proof-document step: files live in the blob
// store, the document list is the step's persisted payload.
type UploadController struct {
	Store    store.SubmissionStore
	Blobs    blob.Store
	MaxBytes int64
}

func NewUploadController(st store.SubmissionStore, blobs blob.Store, maxBytes int64) *UploadController {
	return &UploadController{Store: st, Blobs: blobs, MaxBytes: maxBytes}
}

// Show lists the uploaded documents and which proof categories are still
// required.
func (uc *UploadController) Show(c *gin.Context) {
	data := c.MustGet(middleware.CtxFormData).(*models.FormData)

	docs := []models.Document{}
	if data.Upload != nil {
		docs = data.Upload.Documents
	}
	c.JSON(http.StatusOK, gin.H{
		"step":      models.StepUpload,
		"documents": docs,
		"proofs":    flow.DetermineProof(data),
	})
}

// Save handles the upload form POST. With files attached it stores them and
// returns to the upload page; with action=continue it moves on to contact.
func (uc *UploadController) Save(c *gin.Context) {
	sub := currentSubmission(c)

	if sub.Submitted {
		r := flow.CheckSubmitted(true, models.StepUpload)
		c.Redirect(http.StatusFound, r.Resolve(c.Request.URL.Path))
		return
	}

	form, err := c.MultipartForm()
	if err != nil && c.PostForm("action") != "continue" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a multipart upload"})
		return
	}

	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["documents"]
	}

	if len(files) == 0 {
		if c.PostForm("action") == "continue" {
			c.Redirect(http.StatusFound, flow.RouteFromUpload(c.Request.URL.Path, nil))
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents attached"})
		return
	}

	data, err := uc.Store.LoadFormData(sub.SubmissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}
	upload := data.Upload
	if upload == nil {
		upload = &models.UploadData{}
	}

	for _, fh := range files {
		doc, err := uc.storeFile(c, sub.SubmissionID, fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		upload.Documents = append(upload.Documents, *doc)
	}

	if err := uc.Store.UpsertStepData(sub.SubmissionID, models.StepUpload, upload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save documents"})
		return
	}

	// Stay on the upload page so the user can add more or continue.
	c.Redirect(http.StatusFound, flow.RouteRelative(c.Request.URL.Path, models.StepUpload, nil))
}

// storeFile validates one attachment and writes it to the blob store under
// the submission's key prefix.
func (uc *UploadController) storeFile(c *gin.Context, token string, fh *multipart.FileHeader) (*models.Document, error) {
	if uc.MaxBytes > 0 && fh.Size > uc.MaxBytes {
		return nil, fmt.Errorf("%s is larger than the %d byte limit", fh.Filename, uc.MaxBytes)
	}
	contentType := fh.Header.Get("Content-Type")
	if !acceptedUploadTypes[contentType] {
		return nil, fmt.Errorf("%s: file type %q is not accepted", fh.Filename, contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	key := token + "/" + uuid.NewString() + filepath.Ext(fh.Filename)
	if err := uc.Blobs.Put(c.Request.Context(), key, src, contentType); err != nil {
		return nil, fmt.Errorf("store %s: %w", fh.Filename, err)
	}

	return &models.Document{
		Tag:          newDocumentTag(),
		OriginalName: filepath.Base(fh.Filename),
		Key:          key,
		Size:         fh.Size,
		MimeType:     contentType,
		UploadedAt:   time.Now(),
	}, nil
}

// Delete removes one uploaded document by its tag.
func (uc *UploadController) Delete(c *gin.Context) {
	if models.Step(c.Param("step")) != models.StepUpload {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown step"})
		return
	}
	sub := currentSubmission(c)
	tag := c.Param("tag")

	data, err := uc.Store.LoadFormData(sub.SubmissionID)
	if err != nil || data.Upload == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	kept := make([]models.Document, 0, len(data.Upload.Documents))
	var removed *models.Document
	for _, doc := range data.Upload.Documents {
		if doc.Tag == tag {
			d := doc
			removed = &d
			continue
		}
		kept = append(kept, doc)
	}
	if removed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if err := uc.Blobs.Delete(c.Request.Context(), removed.Key); err != nil && !errors.Is(err, blob.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	if err := uc.Store.UpsertStepData(sub.SubmissionID, models.StepUpload, &models.UploadData{Documents: kept}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": tag, "remaining": len(kept)})
}

// Download hands out the document bytes: a presigned URL when the blob
// driver supports it, a direct stream otherwise.
func (uc *UploadController) Download(c *gin.Context) {
	if models.Step(c.Param("step")) != models.StepUpload {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown step"})
		return
	}
	sub := currentSubmission(c)
	tag := c.Param("tag")

	data, err := uc.Store.LoadFormData(sub.SubmissionID)
	if err != nil || data.Upload == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	var doc *models.Document
	for _, d := range data.Upload.Documents {
		if d.Tag == tag {
			found := d
			doc = &found
			break
		}
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	url, err := uc.Blobs.PresignGet(c.Request.Context(), doc.Key, 15*time.Minute)
	if err == nil {
		c.Redirect(http.StatusFound, url)
		return
	}
	if !errors.Is(err, blob.ErrPresignUnsupported) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue download URL"})
		return
	}

	body, contentType, err := uc.Blobs.Get(c.Request.Context(), doc.Key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	defer body.Close()
	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(doc.OriginalName)+`"`)
	c.DataFromReader(http.StatusOK, doc.Size, contentType, body, nil)
}

func newDocumentTag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
