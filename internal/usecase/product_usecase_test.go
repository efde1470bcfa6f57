package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
	repo "github.com/sandraboakye128-png/desco-preorder-store/internal/repository"
)

func upload(name string) model.Upload {
	return model.Upload{Filename: name, ContentType: "image/png", Body: strings.NewReader("x")}
}

func TestProductUsecase_List_UsesCache(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(UploaderMock), newMemCache(), quietLogger())

	items := []model.Product{{ID: 2, Name: "Kente", Price: decimal.RequireFromString("45.5")}}
	pRepo.On("List", mock.Anything).Return(items, nil).Once()

	first, err := uc.List(ctx)
	require.NoError(t, err)
	second, err := uc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Kente", first[0].Name)
	assert.Equal(t, "Kente", second[0].Name)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("45.5")))
	pRepo.AssertNumberOfCalls(t, "List", 1)
}

func TestProductUsecase_List_DBError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(UploaderMock), newMemCache(), quietLogger())

	pRepo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := uc.List(context.Background())
	he := assertHTTPStatus(t, err, http.StatusInternalServerError)
	assert.Equal(t, MsgServerError, he.Message)
}

func TestProductUsecase_Create_ImagesInSlotOrder(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	up := new(UploaderMock)
	uc := NewProductUsecase(pRepo, up, newMemCache(), quietLogger())

	up.On("Upload", mock.Anything, "a.png").Return("https://cdn/a.png", nil)
	up.On("Upload", mock.Anything, "b.png").Return("https://cdn/b.png", nil)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Beads" &&
			p.Price.Equal(decimal.RequireFromString("12.50")) &&
			p.Image1 == "https://cdn/a.png" &&
			p.Image2 == "https://cdn/b.png" &&
			p.Image3 == ""
	})).Return(model.Product{ID: 9, Name: "Beads"}, nil)

	out, err := uc.Create(ctx, adminCaller, ProductInput{
		Name: "Beads", Price: "12.50", Category: "jewelry",
		Images: []model.Upload{upload("a.png"), upload("b.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
	pRepo.AssertExpectations(t)
	up.AssertExpectations(t)
}

func TestProductUsecase_Create_Validation(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(UploaderMock), newMemCache(), quietLogger())
	ctx := context.Background()

	_, err := uc.Create(ctx, adminCaller, ProductInput{Name: "", Price: "1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.Create(ctx, adminCaller, ProductInput{Name: "A", Price: "-1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.Create(ctx, adminCaller, ProductInput{Name: "A", Price: "abc"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.Create(ctx, adminCaller, ProductInput{
		Name: "A", Price: "1",
		Images: []model.Upload{upload("1"), upload("2"), upload("3"), upload("4")},
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_Create_NonAdminForbidden(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(UploaderMock), newMemCache(), quietLogger())

	_, err := uc.Create(context.Background(), userCaller, ProductInput{Name: "A", Price: "1"})
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestProductUsecase_Create_UploadFailure(t *testing.T) {
	pRepo := new(ProductRepoMock)
	up := new(UploaderMock)
	uc := NewProductUsecase(pRepo, up, newMemCache(), quietLogger())

	up.On("Upload", mock.Anything, "a.png").Return("", errors.New("bucket missing"))

	_, err := uc.Create(context.Background(), adminCaller, ProductInput{Name: "A", Price: "1", Images: []model.Upload{upload("a.png")}})
	he := assertHTTPStatus(t, err, http.StatusBadGateway)
	assert.Equal(t, MsgUploadFailed, he.Message)
	pRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Update_KeepsSlotsWithoutUpload(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	up := new(UploaderMock)
	uc := NewProductUsecase(pRepo, up, newMemCache(), quietLogger())

	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{
		ID: 3, Name: "Old", Image1: "i1", Image2: "i2", Image3: "i3",
	}, nil)
	up.On("Upload", mock.Anything, "new.png").Return("n1", nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 3 && p.Name == "New" && p.Image1 == "n1" && p.Image2 == "i2" && p.Image3 == "i3"
	})).Return(model.Product{ID: 3, Name: "New", Image1: "n1", Image2: "i2", Image3: "i3"}, nil)

	out, err := uc.Update(ctx, adminCaller, 3, ProductInput{Name: "New", Price: "5", Images: []model.Upload{upload("new.png")}})
	require.NoError(t, err)
	assert.Equal(t, "n1", out.Image1)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_Update_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(UploaderMock), newMemCache(), quietLogger())

	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Update(context.Background(), adminCaller, 3, ProductInput{Name: "New", Price: "5"})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	cache := newMemCache()
	uc := NewProductUsecase(pRepo, new(UploaderMock), cache, quietLogger())

	require.NoError(t, cache.Set(ctx, productsCacheKey, []model.Product{{ID: 5}}))
	pRepo.On("Delete", mock.Anything, int64(5)).Return(nil)
	pRepo.On("Delete", mock.Anything, int64(6)).Return(repo.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, adminCaller, 5))
	hit, _ := cache.Get(ctx, productsCacheKey, &[]model.Product{})
	assert.False(t, hit)

	assertHTTPStatus(t, uc.Delete(ctx, adminCaller, 6), http.StatusNotFound)
}
