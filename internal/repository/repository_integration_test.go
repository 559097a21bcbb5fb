//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"storykeep/internal/database"
	"storykeep/internal/model"
	"storykeep/internal/repository"
)

type RepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	provider    *database.Provider
	redisClient *redis.Client
	logger      *zap.Logger

	users      repository.UserRepository
	stories    repository.StoryRepository
	characters repository.CharacterRepository
	traits     repository.TraitRepository
	tokens     repository.TokenRepository
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("storykeep_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	host, err := s.pgContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := s.pgContainer.MappedPort(s.ctx, "5432/tcp")
	require.NoError(s.T(), err)

	cfg := database.Config{
		Host:     host,
		Port:     port.Int(),
		User:     "testuser",
		Password: "testpass",
		Name:     "storykeep_test",
		SSLMode:  "disable",
		MaxConns: 5,
	}
	require.NoError(s.T(), database.Migrate(cfg, database.Up, s.logger))

	s.provider, err = database.Connect(s.ctx, cfg, s.logger)
	require.NoError(s.T(), err)

	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")
	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())

	s.users = repository.NewPgUserRepository(s.provider.Pool(), s.logger)
	s.stories = repository.NewPgStoryRepository(s.provider.Pool(), s.logger)
	s.characters = repository.NewPgCharacterRepository(s.provider.Pool(), s.logger)
	s.traits = repository.NewPgTraitRepository(s.provider.Pool(), s.logger)
	s.tokens = repository.NewRedisTokenRepository(s.redisClient, s.logger)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.provider != nil {
		s.provider.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
	if s.rdContainer != nil {
		if err := s.rdContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

func (s *RepositorySuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
	_, err := s.provider.Pool().Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Skipf("Docker client init error: %v", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Skipf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) createUser(name string) *model.User {
	u := &model.User{Username: name, Email: name + "@example.com", Password: "record"}
	require.NoError(s.T(), s.users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) TestUsers() {
	t := s.T()
	u := s.createUser("alice")
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := s.users.Create(s.ctx, &model.User{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)

	exists, err := s.users.UsernameExists(s.ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	creds, err := s.users.GetCredentials(s.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, creds.ID)
	assert.Equal(t, "record", creds.Password)

	_, err = s.users.GetCredentials(s.ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.users.UpdatePasswordHash(s.ctx, u.ID, "new-record"))
	creds, err = s.users.GetCredentials(s.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new-record", creds.Password)
	assert.ErrorIs(t, s.users.UpdatePasswordHash(s.ctx, 9999, "x"), model.ErrNotFound)

	byID, err := s.users.GetByID(s.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	deleted, err := s.users.Delete(s.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.users.Delete(s.ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func (s *RepositorySuite) TestStories() {
	t := s.T()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	story := &model.Story{Title: "Draft One", Genre: "Fantasy", Status: model.StatusDraft, Synopsis: "s"}
	require.NoError(t, s.stories.Create(s.ctx, alice.ID, story))
	assert.Positive(t, story.ID)
	assert.Equal(t, alice.ID, story.UserID)

	got, err := s.stories.GetByID(s.ctx, alice.ID, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft One", got.Title)
	assert.Equal(t, model.StatusDraft, got.Status)

	_, err = s.stories.GetByID(s.ctx, bob.ID, story.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	got.Status = model.StatusCompleted
	require.NoError(t, s.stories.Update(s.ctx, alice.ID, got))
	updated, err := s.stories.GetByID(s.ctx, alice.ID, story.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.True(t, story.CreatedAt.Equal(updated.CreatedAt), "creation timestamp is immutable")

	require.NoError(t, s.stories.Update(s.ctx, alice.ID, &model.Story{ID: 4242, Title: "ghost", Status: model.StatusDraft}))

	bobs, err := s.stories.ListByUser(s.ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	require.NoError(t, s.stories.Delete(s.ctx, alice.ID, story.ID))
	_, err = s.stories.GetByID(s.ctx, alice.ID, story.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	require.NoError(t, s.stories.Delete(s.ctx, alice.ID, story.ID))
}

func (s *RepositorySuite) TestCharacters() {
	t := s.T()
	alice := s.createUser("alice")

	c := &model.Character{Name: "Mira", Description: "Scout", Backstory: "Born at sea"}
	require.NoError(t, s.characters.Create(s.ctx, alice.ID, c))
	assert.Positive(t, c.ID)

	c.Backstory = "Born in the mountains"
	require.NoError(t, s.characters.Update(s.ctx, alice.ID, c))

	list, err := s.characters.ListByUser(s.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Born in the mountains", list[0].Backstory)

	require.NoError(t, s.characters.Delete(s.ctx, alice.ID, c.ID))
	_, err = s.characters.GetByID(s.ctx, alice.ID, c.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func (s *RepositorySuite) TestTraits_HeldConnection() {
	t := s.T()
	alice := s.createUser("alice")

	traits, err := repository.OpenPgTraitRepository(s.ctx, s.provider, s.logger)
	require.NoError(t, err)

	ok, err := traits.Add(s.ctx, alice.ID, "brave")
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := traits.FindByName(s.ctx, alice.ID, "brave")
	require.NoError(t, err)
	ok, err = traits.RenameByID(s.ctx, alice.ID, found.ID, "bold")
	require.NoError(t, err)
	assert.True(t, ok)

	exists, err := traits.Exists(s.ctx, alice.ID, "bold")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.traits.Exists(s.ctx, alice.ID, "brave")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = traits.FindByName(s.ctx, alice.ID, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	ok, err = traits.Delete(s.ctx, alice.ID, "bold")
	require.NoError(t, err)
	assert.True(t, ok)

	traits.Close()
	traits.Close()
	_, err = traits.Exists(s.ctx, alice.ID, "bold")
	assert.ErrorIs(t, err, model.ErrConnectionUnavailable)
}

func (s *RepositorySuite) TestUserDeleteCascades() {
	t := s.T()
	alice := s.createUser("alice")
	require.NoError(t, s.stories.Create(s.ctx, alice.ID, &model.Story{Title: "t", Status: model.StatusDraft}))
	_, err := s.traits.Add(s.ctx, alice.ID, "kind")
	require.NoError(t, err)

	_, err = s.users.Delete(s.ctx, alice.ID)
	require.NoError(t, err)

	stories, err := s.stories.ListByUser(s.ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func (s *RepositorySuite) TestTokens() {
	t := s.T()

	require.NoError(t, s.tokens.Store(s.ctx, 1, "a", time.Minute))
	require.NoError(t, s.tokens.Store(s.ctx, 1, "b", time.Minute))

	owner, err := s.tokens.Lookup(s.ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), owner)

	require.NoError(t, s.tokens.Revoke(s.ctx, 1, "a"))
	_, err = s.tokens.Lookup(s.ctx, "a")
	assert.ErrorIs(t, err, model.ErrTokenRevoked)

	n, err := s.tokens.RevokeAll(s.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = s.tokens.Lookup(s.ctx, "b")
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}
