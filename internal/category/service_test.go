package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/granahq/grana/internal/category"
	"github.com/granahq/grana/internal/transaction"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		params    category.CreateParams
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: category.CreateParams{Name: "Alimentação", Color: "#EF4444", Type: transaction.AccountPersonal},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingName",
			params:  category.CreateParams{Color: "#EF4444", Type: transaction.AccountPersonal},
			wantErr: category.ErrNameRequired,
		},
		{
			name:    "BadColor",
			params:  category.CreateParams{Name: "Transporte", Color: "blue", Type: transaction.AccountPersonal},
			wantErr: category.ErrInvalidColor,
		},
		{
			name:    "ShortHexColor",
			params:  category.CreateParams{Name: "Transporte", Color: "#FFF", Type: transaction.AccountPersonal},
			wantErr: category.ErrInvalidColor,
		},
		{
			name:    "BadAccountType",
			params:  category.CreateParams{Name: "Transporte", Color: "#3B82F6", Type: "family"},
			wantErr: transaction.ErrInvalidAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()
	catID := uuid.New()

	stored := &category.Category{
		ID:     catID,
		UserID: userID,
		Name:   "Trabalho",
		Color:  "#10B981",
		Type:   transaction.AccountBusiness,
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().GetCategory(gomock.Any(), userID, catID).Return(stored, nil)
	repo.EXPECT().
		UpdateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *category.Category) (bool, error) {
			assert.Equal(t, "Consultoria", c.Name)
			assert.Equal(t, "#10B981", c.Color)
			return true, nil
		})

	svc := category.NewService(repo)

	name := "Consultoria"
	got, err := svc.Update(context.Background(), userID, catID, category.UpdateParams{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Consultoria", got.Name)
}

func TestService_Delete_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID, catID := uuid.New(), uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().DeleteCategory(gomock.Any(), userID, catID).Return(false, nil)

	svc := category.NewService(repo)
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, catID), category.ErrNotFound)
}

func TestService_List_InvalidScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := category.NewService(category.NewMockRepository(ctrl))

	_, err := svc.List(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, transaction.ErrInvalidAccount)
}
