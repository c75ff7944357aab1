package handler

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/response"
	"Quill/internal/pkg/util"
	"Quill/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categorySvc: categorySvc,
	}
}

func (s *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := s.categorySvc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

func (s *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID := c.Param("id")
	if !util.ValidID(categoryID) {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	category, err := s.categorySvc.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.categorySvc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")
	if !util.ValidID(categoryID) {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.categorySvc.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")
	if !util.ValidID(categoryID) {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	msg, err := s.categorySvc.DeleteCategory(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}
