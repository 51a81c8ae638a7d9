package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/internal/validation"
)

// maxMultipartBody bounds a submission request: both files at their limit plus form fields
const maxMultipartBody = validation.MaxLogoSize + validation.MaxPitchDeckSize + 1<<20

func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return false
	}
	return true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// parseSubmissionMultipart reads the wizard form. tags and social_links travel
// as JSON strings; founding_year that is not a number is left at zero so the
// schema reports it.
func parseSubmissionMultipart(c *gin.Context) (entities.SubmissionForm, entities.SubmissionFiles, error) {
	var form entities.SubmissionForm
	var files entities.SubmissionFiles

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipartBody)
	if err := c.Request.ParseMultipartForm(maxMultipartBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return form, files, domainerrors.NewAppError(http.StatusRequestEntityTooLarge, domainerrors.CodeBadRequest, "request body too large", err)
		}
		return form, files, domainerrors.BadRequest("invalid multipart form")
	}

	form.Name = c.PostForm("name")
	form.ShortDescription = c.PostForm("short_description")
	form.LongDescription = c.PostForm("long_description")
	form.FoundingYear, _ = strconv.Atoi(strings.TrimSpace(c.PostForm("founding_year")))
	form.Location = c.PostForm("location")
	form.EmployeeRange = c.PostForm("employee_range")
	form.OperatingStatus = c.PostForm("operating_status")
	form.Website = c.PostForm("website")
	form.Email = c.PostForm("email")
	form.Phone = c.PostForm("phone")
	form.FundingReceived = c.PostForm("funding_received")
	form.SubmitterEmail = c.PostForm("submitter_email")

	if raw := strings.TrimSpace(c.PostForm("tags")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.Tags); err != nil {
			return form, files, domainerrors.Validation("validation failed", map[string]string{"tags": "must be a JSON array of strings"})
		}
	}
	if raw := strings.TrimSpace(c.PostForm("social_links")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.SocialLinks); err != nil {
			return form, files, domainerrors.Validation("validation failed", map[string]string{"social_links": "must be a JSON object"})
		}
	}

	var err error
	if files.Logo, err = readAttachment(c, "logo"); err != nil {
		return form, files, err
	}
	if files.PitchDeck, err = readAttachment(c, "pitch_deck"); err != nil {
		return form, files, err
	}
	return form, files, nil
}

func readAttachment(c *gin.Context, field string) (*entities.Attachment, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, domainerrors.BadRequest(fmt.Sprintf("invalid %s upload", field))
	}
	if header.Size == 0 {
		return nil, nil
	}
	content, err := readFileHeader(header)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("invalid %s upload", field))
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}
	return &entities.Attachment{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     content,
	}, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
