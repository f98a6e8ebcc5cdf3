package delivery

import (
	"context"
	"errors"
	"fmt"
	"ohcm/config"
	"ohcm/domain"
	"ohcm/middleware"
	"ohcm/pipeline"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type hrImportHandler struct {
	uc domain.HRImportUseCase
}

func NewHRImportHandlerDeploy(app *fiber.App, useCase domain.HRImportUseCase) {
	handler := &hrImportHandler{
		uc: useCase,
	}

	route := app.Group("/hr")
	route.Post("/import", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.UploadAndImport)
	route.Get("/faculty/all", middleware.AuthRequired(), middleware.RoleRequired("admin", "staff"), handler.GetAllFaculty)
	route.Get("/download-template", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.DownloadTemplate)
}

func (hih *hrImportHandler) UploadAndImport(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	file, err := c.FormFile("file")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadAndImport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   importError(domain.StageFileRead, "failed to parse uploaded file: "+err.Error(), domain.CategoryInput),
			"message": "Failed to parse file",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadAndImport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   importError(domain.StageFileRead, fmt.Sprintf("unsupported file format %q, use .csv or .xlsx", ext), domain.CategoryInput),
			"message": "Unsupported file format",
		})
	}

	uploadDir := "./uploads"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "UploadAndImport")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
				"message": "Failed to create upload directory",
			})
		}
	}

	filePath := filepath.Join(uploadDir, file.Filename)
	err = c.SaveFile(file, filePath)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadAndImport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   importError(domain.StageFileRead, "failed to save file: "+err.Error(), domain.CategoryInput),
			"message": "Failed to save file",
		})
	}

	report, quality, impErr := hih.processImportFile(c.Context(), filePath)
	if impErr != nil {
		status := fiber.StatusBadRequest
		if impErr.Category == domain.CategoryStorage {
			status = fiber.StatusInternalServerError
		}
		config.PrintLogInfo(&userToken.Username, status, "UploadAndImport")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   impErr,
			"message": "Import failed",
		})
	}

	// Skips are an expected outcome, not an error: the report carries them.
	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "UploadAndImport")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      fmt.Sprintf("Successfully inserted %d person/faculty sets.", report.Processed),
		"report":       report,
		"data_quality": quality,
	})
}

func (hih *hrImportHandler) processImportFile(c context.Context, filePath string) (*domain.ImportReport, *pipeline.BuildResult, *domain.ImportError) {
	log := config.GetLogrusInstance()

	defer func() {
		if err := os.Remove(filePath); err != nil {
			log.Warnf("Failed to delete uploaded file: %v", err)
		}
	}()

	table, err := pipeline.LoadTable(filePath)
	if err != nil {
		return nil, nil, importError(domain.StageFileRead, err.Error(), domain.CategoryInput)
	}

	result, err := pipeline.BuildImportRows(table, log)
	if err != nil {
		return nil, nil, importError(domain.StageColumnMapping, err.Error(), domain.CategoryInput)
	}

	report, err := hih.uc.ImportFaculty(c, result.Rows)
	if err != nil {
		var impErr *domain.ImportError
		if errors.As(err, &impErr) {
			return nil, nil, impErr
		}
		return nil, nil, importError(domain.StageCommit, err.Error(), domain.CategoryStorage)
	}

	// The rows themselves are not part of the response payload
	result.Rows = nil
	return report, result, nil
}

func (hih *hrImportHandler) GetAllFaculty(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	faculties, err := hih.uc.GetAllFaculty(c.Context())
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllFaculty")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to get all faculty",
			"data":    nil,
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllFaculty")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Faculty retrieved successfully",
		"data":    faculties,
	})
}

func (hih *hrImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	filePath := "./template/faculty_import_template.csv"

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="faculty_import_template.csv"`)
	c.Set(fiber.HeaderContentType, "text/csv")

	err := c.SendFile(filePath, true)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DownloadTemplate")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to download template: " + err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DownloadTemplate")
	return nil
}

func importError(stage, message, category string) *domain.ImportError {
	return &domain.ImportError{
		Stage:    stage,
		Message:  message,
		Category: category,
	}
}
