package service

import (
	"context"
	"errors"
	"fmt"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/pipeline"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/google/uuid"
)

// GameService бизнес-логика каталога игр: выборка через конвейер,
// счетчик просмотров и управление играми
type GameService struct {
	gameRepo      repository.GameRepository
	genreRepo     repository.GenreRepository
	platformRepo  repository.PlatformRepository
	publisherRepo repository.PublisherRepository
	pipeline      QueryPipeline
}

// NewGameService создает новый сервис игр с внедрением зависимостей
func NewGameService(
	gameRepo repository.GameRepository,
	genreRepo repository.GenreRepository,
	platformRepo repository.PlatformRepository,
	publisherRepo repository.PublisherRepository,
	pipeline QueryPipeline,
) *GameService {
	return &GameService{
		gameRepo:      gameRepo,
		genreRepo:     genreRepo,
		platformRepo:  platformRepo,
		publisherRepo: publisherRepo,
		pipeline:      pipeline,
	}
}

// === КАТАЛОГ ===

// GetFilteredSortedPaginatedGames возвращает страницу каталога.
// Общее число страниц считается по фильтрам без окна страницы,
// каждая игра из выдачи получает +1 к просмотрам.
func (s *GameService) GetFilteredSortedPaginatedGames(ctx context.Context, q *entity.GameQuery) (*entity.GamePageResponse, error) {
	filters, err := s.pipeline.Filters(q)
	if err != nil {
		return nil, err
	}
	scopes, err := s.pipeline.Scopes(q)
	if err != nil {
		return nil, err
	}

	total, err := s.gameRepo.Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}
	totalPages, err := pipeline.TotalPages(total, q.PageSize)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.Find(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	if err := s.gameRepo.IncrementViewCount(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}
	for i := range games {
		games[i].ViewCount++
	}

	page := &entity.GamePageResponse{
		Games:       toGameResponses(games),
		TotalPages:  totalPages,
		CurrentPage: q.Page,
	}

	metrics.CatalogQueryResults.Observe(float64(len(games)))
	metrics.CatalogGameViews.WithLabelValues("list").Add(float64(len(games)))

	return page, nil
}

// GetGameByKey получает игру по ключу и засчитывает просмотр
func (s *GameService) GetGameByKey(ctx context.Context, key string) (*entity.GameResponse, error) {
	game, err := s.gameRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, mapGameError(err)
	}
	return s.view(ctx, game, "key")
}

// GetGameByID получает игру по ID и засчитывает просмотр
func (s *GameService) GetGameByID(ctx context.Context, id uuid.UUID) (*entity.GameResponse, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapGameError(err)
	}
	return s.view(ctx, game, "id")
}

func (s *GameService) view(ctx context.Context, game *entity.Game, source string) (*entity.GameResponse, error) {
	if err := s.gameRepo.IncrementViewCount(ctx, []uuid.UUID{game.ID}); err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}
	game.ViewCount++
	metrics.CatalogGameViews.WithLabelValues(source).Inc()

	resp := entity.NewGameResponse(game)
	return &resp, nil
}

// GameExists проверка существования игры без побочных эффектов
func (s *GameService) GameExists(ctx context.Context, key string) (bool, error) {
	exists, err := s.gameRepo.ExistsByKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check game: %w", err)
	}
	return exists, nil
}

// === УПРАВЛЕНИЕ ИГРАМИ ===

// AddGame создает игру после проверки всех ссылок на справочники
func (s *GameService) AddGame(ctx context.Context, req *entity.GameRequest) (*entity.GameResponse, error) {
	game := &entity.Game{ID: uuid.New()}
	if err := s.apply(ctx, game, req); err != nil {
		return nil, err
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrGameKeyExists
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	logger.Info().Str("game_key", game.Key).Str("game_id", game.ID.String()).Msg("Game created")

	resp := entity.NewGameResponse(game)
	return &resp, nil
}

// UpdateGame полностью заменяет поля игры, включая наборы жанров и платформ
func (s *GameService) UpdateGame(ctx context.Context, key string, req *entity.GameRequest) (*entity.GameResponse, error) {
	game, err := s.gameRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, mapGameError(err)
	}

	if err := s.apply(ctx, game, req); err != nil {
		return nil, err
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrGameKeyExists
		}
		return nil, mapGameError(err)
	}

	logger.Info().Str("game_key", game.Key).Msg("Game updated")

	resp := entity.NewGameResponse(game)
	return &resp, nil
}

func (s *GameService) DeleteGame(ctx context.Context, key string) error {
	game, err := s.gameRepo.GetByKey(ctx, key)
	if err != nil {
		return mapGameError(err)
	}

	if err := s.gameRepo.Delete(ctx, game.ID); err != nil {
		return mapGameError(err)
	}

	logger.Info().Str("game_key", key).Msg("Game deleted")
	return nil
}

// apply проверяет ссылки (жанры, затем платформы, затем издатель) и переносит запрос в сущность.
// Первая отсутствующая ссылка прерывает проверку.
func (s *GameService) apply(ctx context.Context, game *entity.Game, req *entity.GameRequest) error {
	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return err
	}
	platforms, err := s.resolvePlatforms(ctx, req.PlatformIDs)
	if err != nil {
		return err
	}
	publisher, err := s.publisherRepo.GetByID(ctx, req.PublisherID)
	if err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return fmt.Errorf("%w: %s", ErrPublisherNotFound, req.PublisherID)
		}
		return fmt.Errorf("failed to get publisher: %w", err)
	}

	game.Key = req.Key
	game.Name = req.Name
	game.Description = req.Description
	game.Price = req.Price
	game.UnitInStock = req.UnitInStock
	game.Discount = req.Discount
	game.PublisherID = publisher.ID
	game.Publisher = publisher
	game.PublishedDate = req.PublishedDate.UTC()
	game.Genres = genres
	game.Platforms = platforms
	return nil
}

func (s *GameService) resolveGenres(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error) {
	ids = uniqueIDs(ids)
	genres, err := s.genreRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}

	found := make(map[uuid.UUID]entity.Genre, len(genres))
	for _, g := range genres {
		found[g.ID] = g
	}

	result := make([]entity.Genre, 0, len(ids))
	for _, id := range ids {
		g, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrGenreNotFound, id)
		}
		result = append(result, g)
	}
	return result, nil
}

func (s *GameService) resolvePlatforms(ctx context.Context, ids []uuid.UUID) ([]entity.Platform, error) {
	ids = uniqueIDs(ids)
	platforms, err := s.platformRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get platforms: %w", err)
	}

	found := make(map[uuid.UUID]entity.Platform, len(platforms))
	for _, p := range platforms {
		found[p.ID] = p
	}

	result := make([]entity.Platform, 0, len(ids))
	for _, id := range ids {
		p, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlatformNotFound, id)
		}
		result = append(result, p)
	}
	return result, nil
}

// === ВЫБОРКИ ПО СПРАВОЧНИКАМ ===

func (s *GameService) GetGamesByGenre(ctx context.Context, genreID uuid.UUID) ([]entity.GameResponse, error) {
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return s.listAll(ctx, &entity.GameQuery{GenreIDs: []uuid.UUID{genreID}})
}

func (s *GameService) GetGamesByPlatform(ctx context.Context, platformID uuid.UUID) ([]entity.GameResponse, error) {
	if _, err := s.platformRepo.GetByID(ctx, platformID); err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	return s.listAll(ctx, &entity.GameQuery{PlatformIDs: []uuid.UUID{platformID}})
}

func (s *GameService) GetGamesByPublisher(ctx context.Context, companyName string) ([]entity.GameResponse, error) {
	publisher, err := s.publisherRepo.GetByCompanyName(ctx, companyName)
	if err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return nil, ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher: %w", err)
	}
	return s.listAll(ctx, &entity.GameQuery{PublisherIDs: []uuid.UUID{publisher.ID}})
}

// listAll выборка без окна страницы и без учета просмотров
func (s *GameService) listAll(ctx context.Context, q *entity.GameQuery) ([]entity.GameResponse, error) {
	q.PageSize = entity.PageSizeAll

	scopes, err := s.pipeline.Scopes(q)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.Find(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	return toGameResponses(games), nil
}

func mapGameError(err error) error {
	if errors.Is(err, repository.ErrGameNotFound) {
		return ErrGameNotFound
	}
	return fmt.Errorf("game repository: %w", err)
}

func toGameResponses(games []entity.Game) []entity.GameResponse {
	result := make([]entity.GameResponse, 0, len(games))
	for i := range games {
		result = append(result, entity.NewGameResponse(&games[i]))
	}
	return result
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
