package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/littlelemon-backend/pkg/db"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
	"gorm.io/gorm"
)

var menuItemOrdering = map[string]string{
	"id":       "menu_items.id",
	"title":    "menu_items.title",
	"price":    "menu_items.price",
	"featured": "menu_items.featured",
	"category": "menu_items.category_id",
}

// Service covers menu browsing and the manager/admin catalog edits.
type Service interface {
	ListMenuItems(ctx context.Context, filters MenuItemFilters, params pagination.Params) (pagination.Page[MenuItemDTO], error)
	GetMenuItem(ctx context.Context, id uint) (*MenuItemDTO, error)
	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemDTO, error)
	UpdateMenuItem(ctx context.Context, id uint, input UpdateMenuItemInput) (*MenuItemDTO, error)
	DeleteMenuItem(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListMenuItems(ctx context.Context, filters MenuItemFilters, params pagination.Params) (pagination.Page[MenuItemDTO], error) {
	order, err := pagination.ParseOrdering(filters.Ordering, menuItemOrdering)
	if err != nil {
		return pagination.Page[MenuItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	items, total, err := s.repo.ListMenuItems(ctx, filters, order, params)
	if err != nil {
		return pagination.Page[MenuItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list menu items")
	}
	return pagination.NewPage(params, total, menuItemsFromModels(items)), nil
}

func (s *service) GetMenuItem(ctx context.Context, id uint) (*MenuItemDTO, error) {
	item, err := s.repo.FindMenuItem(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "menu item not found", "load menu item")
	}
	dto := menuItemFromModel(*item)
	return &dto, nil
}

func (s *service) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := s.requireCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Title:      title,
		Price:      input.Price.Round(2),
		Featured:   input.Featured,
		CategoryID: input.Category,
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu item")
	}

	s.logg.Info(s.logg.WithField(ctx, "menu_item_id", item.ID), "menu_item.created")
	dto := menuItemFromModel(*item)
	return &dto, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, id uint, input UpdateMenuItemInput) (*MenuItemDTO, error) {
	if _, err := s.repo.FindMenuItem(ctx, id); err != nil {
		return nil, notFoundOr(err, "menu item not found", "load menu item")
	}

	if !input.isEmpty() {
		updates := map[string]any{}
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "title may not be blank")
			}
			updates["title"] = title
		}
		if input.Price != nil {
			updates["price"] = input.Price.Round(2)
		}
		if input.Featured != nil {
			updates["featured"] = *input.Featured
		}
		if input.Category != nil {
			if err := s.requireCategory(ctx, *input.Category); err != nil {
				return nil, err
			}
			updates["category_id"] = *input.Category
		}
		if err := s.repo.UpdateMenuItem(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu item")
		}
		s.logg.Info(s.logg.WithField(ctx, "menu_item_id", id), "menu_item.updated")
	}

	return s.GetMenuItem(ctx, id)
}

func (s *service) DeleteMenuItem(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "menu item is referenced by placed orders")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete menu item")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	s.logg.Info(s.logg.WithField(ctx, "menu_item_id", id), "menu_item.deleted")
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryFromModel(c))
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	category := &models.Category{Title: title}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category with this title already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	dto := categoryFromModel(*category)
	return &dto, nil
}

func (s *service) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category").WithDetails(map[string]string{"category": "does not exist"})
	}
	return nil
}

func notFoundOr(err error, notFound, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
