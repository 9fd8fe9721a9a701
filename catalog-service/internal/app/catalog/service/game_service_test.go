package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/pipeline"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gameServiceDeps struct {
	games      *mocks.MockGameRepository
	genres     *mocks.MockGenreRepository
	platforms  *mocks.MockPlatformRepository
	publishers *mocks.MockPublisherRepository
}

func newGameService() (*GameService, gameServiceDeps) {
	deps := gameServiceDeps{
		games:      new(mocks.MockGameRepository),
		genres:     new(mocks.MockGenreRepository),
		platforms:  new(mocks.MockPlatformRepository),
		publishers: new(mocks.MockPublisherRepository),
	}
	svc := NewGameService(deps.games, deps.genres, deps.platforms, deps.publishers, pipeline.New(time.Now))
	return svc, deps
}

// ===================== Catalog query =====================

func TestGetFilteredSortedPaginatedGames_Success(t *testing.T) {
	// Arrange
	svc, deps := newGameService()
	ctx := context.Background()

	witcher := entity.Game{ID: uuid.New(), Key: "witcher-3", Name: "Witcher 3", Price: 19.99, ViewCount: 4}
	q := &entity.GameQuery{Name: "wit", PageSize: entity.PageSize10}

	deps.games.On("Count", ctx, mock.Anything).Return(int64(11), nil)
	deps.games.On("Find", ctx, mock.Anything).Return([]entity.Game{witcher}, nil)
	deps.games.On("IncrementViewCount", ctx, []uuid.UUID{witcher.ID}).Return(nil)

	// Act
	page, err := svc.GetFilteredSortedPaginatedGames(ctx, q)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 0, page.CurrentPage)
	require.Len(t, page.Games, 1)
	assert.Equal(t, "witcher-3", page.Games[0].Key)
	assert.Equal(t, int64(5), page.Games[0].ViewCount)
	deps.games.AssertExpectations(t)
}

func TestGetFilteredSortedPaginatedGames_CountUsesFiltersOnly(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	q := &entity.GameQuery{Name: "witcher", SortBy: entity.SortPriceAsc, PageSize: entity.PageSize20}

	var countScopes, findScopes []repository.Scope
	deps.games.On("Count", ctx, mock.Anything).Run(func(args mock.Arguments) {
		countScopes = args.Get(1).([]repository.Scope)
	}).Return(int64(0), nil)
	deps.games.On("Find", ctx, mock.Anything).Run(func(args mock.Arguments) {
		findScopes = args.Get(1).([]repository.Scope)
	}).Return([]entity.Game{}, nil)
	deps.games.On("IncrementViewCount", ctx, []uuid.UUID{}).Return(nil)

	page, err := svc.GetFilteredSortedPaginatedGames(ctx, q)

	require.NoError(t, err)
	assert.Empty(t, page.Games)
	assert.Zero(t, page.TotalPages)
	assert.Len(t, countScopes, 1) // name
	assert.Len(t, findScopes, 3)  // name, sort, page
}

func TestGetFilteredSortedPaginatedGames_InvalidSort(t *testing.T) {
	svc, deps := newGameService()

	_, err := svc.GetFilteredSortedPaginatedGames(context.Background(), &entity.GameQuery{SortBy: "alphabetical"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	deps.games.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestGetFilteredSortedPaginatedGames_PageOutOfRange(t *testing.T) {
	svc, deps := newGameService()

	_, err := svc.GetFilteredSortedPaginatedGames(context.Background(), &entity.GameQuery{Page: math.MaxInt/10 + 1, PageSize: entity.PageSize10})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	deps.games.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

func TestGetFilteredSortedPaginatedGames_InvalidPublishDate(t *testing.T) {
	svc, _ := newGameService()

	_, err := svc.GetFilteredSortedPaginatedGames(context.Background(), &entity.GameQuery{PublishDate: "yesterday"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
}

// ===================== Single game reads =====================

func TestGetGameByKey_IncrementsViewCount(t *testing.T) {
	// Arrange
	svc, deps := newGameService()
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3", ViewCount: 41}

	deps.games.On("GetByKey", ctx, "witcher-3").Return(game, nil)
	deps.games.On("IncrementViewCount", ctx, []uuid.UUID{game.ID}).Return(nil).Once()

	// Act
	resp, err := svc.GetGameByKey(ctx, "witcher-3")

	// Assert
	require.NoError(t, err)
	assert.EqualValues(t, 42, resp.ViewCount)
	deps.games.AssertExpectations(t)
}

func TestGetGameByID_NotFound(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	id := uuid.New()

	deps.games.On("GetByID", ctx, id).Return(nil, repository.ErrGameNotFound)

	_, err := svc.GetGameByID(ctx, id)

	assert.ErrorIs(t, err, ErrGameNotFound)
	deps.games.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

// ===================== Add / Update =====================

func gameRequest(publisherID uuid.UUID, genres, platforms []uuid.UUID) *entity.GameRequest {
	return &entity.GameRequest{
		Key:           "witcher-3",
		Name:          "Witcher 3",
		Price:         19.99,
		UnitInStock:   10,
		PublisherID:   publisherID,
		GenreIDs:      genres,
		PlatformIDs:   platforms,
		PublishedDate: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddGame_Success(t *testing.T) {
	// Arrange
	svc, deps := newGameService()
	ctx := context.Background()
	rpg := entity.Genre{ID: uuid.New(), Name: "RPG"}
	pc := entity.Platform{ID: uuid.New(), Type: "PC"}
	publisher := &entity.Publisher{ID: uuid.New(), CompanyName: "CD Projekt"}
	req := gameRequest(publisher.ID, []uuid.UUID{rpg.ID, rpg.ID}, []uuid.UUID{pc.ID})

	deps.genres.On("GetByIDs", ctx, []uuid.UUID{rpg.ID}).Return([]entity.Genre{rpg}, nil)
	deps.platforms.On("GetByIDs", ctx, []uuid.UUID{pc.ID}).Return([]entity.Platform{pc}, nil)
	deps.publishers.On("GetByID", ctx, publisher.ID).Return(publisher, nil)
	deps.games.On("Create", ctx, mock.MatchedBy(func(g *entity.Game) bool {
		return g.Key == "witcher-3" && len(g.Genres) == 1 && len(g.Platforms) == 1 && g.PublisherID == publisher.ID
	})).Return(nil)

	// Act
	resp, err := svc.AddGame(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "witcher-3", resp.Key)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	deps.games.AssertExpectations(t)
}

func TestAddGame_FirstMissingReferenceWins(t *testing.T) {
	// Arrange
	svc, deps := newGameService()
	ctx := context.Background()
	missingGenre := uuid.New()
	missingPlatform := uuid.New()
	req := gameRequest(uuid.New(), []uuid.UUID{missingGenre}, []uuid.UUID{missingPlatform})

	deps.genres.On("GetByIDs", ctx, []uuid.UUID{missingGenre}).Return([]entity.Genre{}, nil)

	// Act
	_, err := svc.AddGame(ctx, req)

	// Assert
	require.ErrorIs(t, err, ErrGenreNotFound)
	assert.Contains(t, err.Error(), missingGenre.String())
	deps.platforms.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	deps.publishers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	deps.games.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddGame_MissingPlatform(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	missing := uuid.New()
	req := gameRequest(uuid.New(), nil, []uuid.UUID{missing})

	deps.genres.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Genre{}, nil)
	deps.platforms.On("GetByIDs", ctx, []uuid.UUID{missing}).Return([]entity.Platform{}, nil)

	_, err := svc.AddGame(ctx, req)

	assert.ErrorIs(t, err, ErrPlatformNotFound)
}

func TestAddGame_MissingPublisher(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	req := gameRequest(uuid.New(), nil, nil)

	deps.genres.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Genre{}, nil)
	deps.platforms.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Platform{}, nil)
	deps.publishers.On("GetByID", ctx, req.PublisherID).Return(nil, repository.ErrPublisherNotFound)

	_, err := svc.AddGame(ctx, req)

	assert.ErrorIs(t, err, ErrPublisherNotFound)
}

func TestAddGame_DuplicateKey(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	publisher := &entity.Publisher{ID: uuid.New()}
	req := gameRequest(publisher.ID, nil, nil)

	deps.genres.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Genre{}, nil)
	deps.platforms.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Platform{}, nil)
	deps.publishers.On("GetByID", ctx, publisher.ID).Return(publisher, nil)
	deps.games.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.AddGame(ctx, req)

	assert.ErrorIs(t, err, ErrGameKeyExists)
}

func TestUpdateGame_ReplacesAssociations(t *testing.T) {
	// Arrange
	svc, deps := newGameService()
	ctx := context.Background()
	oldGenre := entity.Genre{ID: uuid.New(), Name: "RPG"}
	newGenre := entity.Genre{ID: uuid.New(), Name: "Action"}
	publisher := &entity.Publisher{ID: uuid.New()}
	existing := &entity.Game{ID: uuid.New(), Key: "witcher-3", Genres: []entity.Genre{oldGenre}}
	req := gameRequest(publisher.ID, []uuid.UUID{newGenre.ID}, nil)

	deps.games.On("GetByKey", ctx, "witcher-3").Return(existing, nil)
	deps.genres.On("GetByIDs", ctx, []uuid.UUID{newGenre.ID}).Return([]entity.Genre{newGenre}, nil)
	deps.platforms.On("GetByIDs", ctx, []uuid.UUID{}).Return([]entity.Platform{}, nil)
	deps.publishers.On("GetByID", ctx, publisher.ID).Return(publisher, nil)
	deps.games.On("Update", ctx, existing).Return(nil)

	// Act
	resp, err := svc.UpdateGame(ctx, "witcher-3", req)

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, newGenre.ID, resp.Genres[0].ID)
	assert.Empty(t, resp.Platforms)
	assert.Equal(t, existing.ID, resp.ID)
}

func TestUpdateGame_NotFound(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()

	deps.games.On("GetByKey", ctx, "ghost").Return(nil, repository.ErrGameNotFound)

	_, err := svc.UpdateGame(ctx, "ghost", gameRequest(uuid.New(), nil, nil))

	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDeleteGame(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3"}

	deps.games.On("GetByKey", ctx, "witcher-3").Return(game, nil)
	deps.games.On("Delete", ctx, game.ID).Return(nil)

	assert.NoError(t, svc.DeleteGame(ctx, "witcher-3"))
	deps.games.AssertExpectations(t)
}

// ===================== Lookups =====================

func TestGetGamesByGenre_NotFound(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	id := uuid.New()

	deps.genres.On("GetByID", ctx, id).Return(nil, repository.ErrGenreNotFound)

	_, err := svc.GetGamesByGenre(ctx, id)

	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestGetGamesByPublisher_DoesNotCountViews(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()
	publisher := &entity.Publisher{ID: uuid.New(), CompanyName: "Blizzard"}

	deps.publishers.On("GetByCompanyName", ctx, "Blizzard").Return(publisher, nil)
	deps.games.On("Find", ctx, mock.Anything).Return([]entity.Game{{ID: uuid.New(), Key: "warcraft"}}, nil)

	games, err := svc.GetGamesByPublisher(ctx, "Blizzard")

	require.NoError(t, err)
	require.Len(t, games, 1)
	deps.games.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

func TestGameExists_RepositoryError(t *testing.T) {
	svc, deps := newGameService()
	ctx := context.Background()

	deps.games.On("ExistsByKey", ctx, "witcher-3").Return(false, errors.New("db down"))

	_, err := svc.GameExists(ctx, "witcher-3")

	assert.Error(t, err)
}
