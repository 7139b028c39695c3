package repository

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"joseki/internal/bootstrap"
	"joseki/internal/domain/game"
	apperrors "joseki/internal/errors"
)

const (
	gamesCollection = "games"
	sgfKeyPrefix    = "sgf:"
	queryTimeout    = 5 * time.Second
)

// GameRepository keeps game documents in MongoDB and the SGF text of each
// game in Redis.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

// EnsureIndexes creates the unique indexes lookups rely on.
func (g *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "game_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "game_key_public", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create game indexes: %w", err)
	}
	return nil
}

// GenerateGameKeys returns a random secret key and a short public code that
// is not yet used by another game.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		uniq, err := g.CheckPublicKeyIsUniq(ctx, gameKeyPublic)
		if err != nil {
			return "", "", err
		}
		if uniq {
			return gameKeySecret, gameKeyPublic, nil
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"game_key_public": gameKeyPublic}
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check public key: %w", err)
	}
	return false, nil
}

func (g *GameRepository) PutGame(ctx context.Context, record game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, record)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return fmt.Errorf("%w: %v", apperrors.ErrCreateGameFailed, err)
	}

	g.log.Infof("game inserted successfully with key: %s", record.GameKey)
	return nil
}

func (g *GameRepository) GetGameByKey(ctx context.Context, gameKey string) (game.Record, error) {
	return g.findOne(ctx, bson.M{"game_key": gameKey})
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error) {
	return g.findOne(ctx, bson.M{"game_key_public": gameKeyPublic})
}

func (g *GameRepository) findOne(ctx context.Context, filter bson.M) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var result game.Record
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, apperrors.ErrGameNotFound
	}
	if err != nil {
		g.log.Error(err)
		return game.Record{}, fmt.Errorf("find game: %w", err)
	}

	return result, nil
}

// AppendMove adds an accepted move to the game document.
func (g *GameRepository) AppendMove(ctx context.Context, gameKey string, move game.Move) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"game_key": gameKey}
	update := bson.M{"$push": bson.M{"moves": move}}

	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("append move: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrGameNotFound
	}
	return nil
}

func (g *GameRepository) SetStatus(ctx context.Context, gameKey string, status string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"game_key": gameKey}
	update := bson.M{"$set": bson.M{"status": status}}

	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrGameNotFound
	}
	return nil
}

func (g *GameRepository) SaveSGF(ctx context.Context, gameKey string, sgfText string) error {
	ttl := time.Duration(g.cfg.SgfTtlHours) * time.Hour
	return g.redis.Set(ctx, sgfKeyPrefix+gameKey, sgfText, ttl).Err()
}

func (g *GameRepository) LoadSGF(ctx context.Context, gameKey string) (string, error) {
	text, err := g.redis.Get(ctx, sgfKeyPrefix+gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrGameNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load sgf: %w", err)
	}
	return text, nil
}
