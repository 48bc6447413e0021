package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"studymate/internal/app"
	"studymate/internal/pkg/pdfextract"
	"studymate/internal/transport/http/response"
)

type CorpusHandler struct {
	corpusService *app.CorpusService
	maxFileSize   int64
}

func NewCorpusHandler(corpusService *app.CorpusService, maxFileSize int64) *CorpusHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	return &CorpusHandler{corpusService: corpusService, maxFileSize: maxFileSize}
}

// Upload accepts a multipart form with one or more PDF files under
// "files". Paragraphs are extracted per file, concatenated in upload
// order with a continuous index, and replace the user's previous corpus
// in one swap.
func (h *CorpusHandler) Upload(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "no files uploaded")
		return
	}

	var paragraphs []string
	for _, file := range files {
		if file.Size > h.maxFileSize {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large: "+file.Filename)
			return
		}
		if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
			return
		}

		f, err := file.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
			return
		}
		extracted, err := pdfextract.ExtractParagraphs(f)
		_ = f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to extract text from PDF: "+err.Error())
			return
		}
		paragraphs = append(paragraphs, extracted...)
	}

	count, err := h.corpusService.Replace(username, paragraphs)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "store paragraphs failed")
		}
		return
	}

	response.OK(c, gin.H{
		"message":         "PDF uploaded and paragraphs stored successfully.",
		"paragraph_count": count,
	})
}

func (h *CorpusHandler) List(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	paragraphs, err := h.corpusService.List(username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list paragraphs failed")
		return
	}

	response.OK(c, gin.H{"paragraphs": paragraphs, "count": len(paragraphs)})
}

func (h *CorpusHandler) Purge(c *gin.Context) {
	username, ok := getUsernameFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	if err := h.corpusService.Purge(username); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "purge corpus failed")
		return
	}

	response.OK(c, gin.H{"message": "corpus deleted"})
}
