package routes

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"doc-qa-assistant/internal/config"
	"doc-qa-assistant/internal/logger"
	"doc-qa-assistant/middleware"
	"doc-qa-assistant/models"
	"doc-qa-assistant/services"
	"doc-qa-assistant/utils"

	"github.com/gin-gonic/gin"
)

// SetupDocumentRoutes registers the upload, question and document endpoints
func SetupDocumentRoutes(router gin.IRouter, cfg *config.Config, svc *services.DocumentService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"provider_mode": svc.ProviderMode(),
		})
	})

	router.POST("/upload", middleware.RequestSizeLimit(cfg.MaxContentLength), handleUpload(cfg, svc))
	router.POST("/ask", handleAsk(svc))

	router.GET("/documents", func(c *gin.Context) {
		docs := svc.List()
		summaries := make([]models.DocumentSummary, 0, len(docs))
		for _, d := range docs {
			summaries = append(summaries, models.DocumentSummary{ID: d.ID, Filename: d.Filename, Stats: d.Stats})
		}
		c.JSON(http.StatusOK, gin.H{"documents": summaries})
	})

	router.GET("/document/:id", func(c *gin.Context) {
		doc, err := svc.Get(c.Param("id"))
		if err != nil {
			utils.RespondWithNotFound(c, "Document not found")
			return
		}
		c.JSON(http.StatusOK, models.DocumentDetail{
			ID:       doc.ID,
			Filename: doc.Filename,
			Stats:    doc.Stats,
			Preview:  services.Preview(doc),
		})
	})
}

func handleUpload(cfg *config.Config, svc *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(cfg.MaxContentLength); err != nil {
			if isBodyTooLarge(err) {
				utils.RespondWithTooLarge(c, cfg.MaxContentLength)
				return
			}
			utils.RespondWithBadRequest(c, "No file provided", nil)
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			// Browsers send an empty file input as a plain form value
			if _, ok := c.Request.MultipartForm.Value["file"]; ok {
				utils.RespondWithBadRequest(c, "No file selected", nil)
				return
			}
			utils.RespondWithBadRequest(c, "No file provided", nil)
			return
		}
		file.Close()

		if header.Filename == "" {
			utils.RespondWithBadRequest(c, "No file selected", nil)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext == "" || !cfg.IsAllowedExtension(ext) {
			utils.RespondWithBadRequest(c,
				"File type not allowed. Supported: "+strings.Join(cfg.AllowedExtensions, ", "), nil)
			return
		}

		filename := utils.SecureFilename(header.Filename)
		if strings.ToLower(filepath.Ext(filename)) != ext {
			filename = "document" + ext
		}

		if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
			logger.Error("Failed to create upload folder", "folder", cfg.UploadFolder, "error", err)
			utils.RespondWithInternalError(c, "Failed to store upload", nil)
			return
		}

		id := svc.NewDocumentID()
		path := filepath.Join(cfg.UploadFolder, id+"_"+filename)
		if err := c.SaveUploadedFile(header, path); err != nil {
			logger.Error("Failed to save upload", "path", path, "error", err)
			utils.RespondWithInternalError(c, "Failed to store upload", nil)
			return
		}

		doc, err := svc.Ingest(c.Request.Context(), id, filename, path)
		if err != nil {
			logger.Warn("Document ingestion failed",
				"filename", filename,
				"request_id", middleware.GetRequestID(c),
				"error", err,
			)
			_ = os.Remove(path)
			utils.RespondWithUnprocessable(c, "Could not extract text from the document", err.Error())
			return
		}

		c.Set("doc_id", doc.ID)
		c.JSON(http.StatusOK, models.UploadResponse{
			Success:  true,
			DocID:    doc.ID,
			Filename: doc.Filename,
			Stats:    doc.Stats,
		})
	}
}

func handleAsk(svc *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil || req == (models.AskRequest{}) {
			utils.RespondWithBadRequest(c, "No data provided", nil)
			return
		}

		// A blank question is rejected, but the question is answered and
		// echoed exactly as sent
		question := req.Question
		if req.DocID == "" || strings.TrimSpace(question) == "" {
			utils.RespondWithBadRequest(c, "Missing doc_id or question", nil)
			return
		}

		c.Set("doc_id", req.DocID)
		answer, err := svc.Ask(c.Request.Context(), req.DocID, question)
		if err != nil {
			if errors.Is(err, services.ErrDocumentNotFound) {
				utils.RespondWithNotFound(c, "Document not found. Please upload a document first.")
				return
			}
			logger.Error("Failed to answer question", "doc_id", req.DocID, "error", err)
			utils.RespondWithInternalError(c, "Failed to answer question", nil)
			return
		}

		c.JSON(http.StatusOK, models.AskResponse{
			Success:  true,
			Question: question,
			Answer:   answer.Text,
			DocID:    req.DocID,
		})
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
