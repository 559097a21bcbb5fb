package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storykeep/internal/model"
	"storykeep/internal/session"
)

// memStore is an in-memory stand-in for the relational store.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*model.User
	stories    map[int64]model.Story
	characters map[int64]model.Character
	traits     map[int64]model.Trait
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]*model.User{},
		stories:    map[int64]model.Story{},
		characters: map[int64]model.Character{},
		traits:     map[int64]model.Trait{},
	}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

type memUsers struct{ *memStore }

func (r memUsers) GetCredentials(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return model.ErrUserAlreadyExists
		}
	}
	user.ID = r.id()
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetCredentials(ctx, username)
	return err == nil, nil
}

func (r memUsers) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (memUsers) Close() {}

type memStories struct{ *memStore }

func (r memStories) Create(_ context.Context, ownerID int64, s *model.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID, s.UserID, s.CreatedAt = r.id(), ownerID, time.Now()
	r.stories[s.ID] = *s
	return nil
}

func (r memStories) GetByID(_ context.Context, ownerID, id int64) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok || s.UserID != ownerID {
		return nil, model.ErrNotFound
	}
	return &s, nil
}

func (r memStories) Update(_ context.Context, ownerID int64, s *model.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.stories[s.ID]
	if !ok || cur.UserID != ownerID {
		return nil
	}
	cur.Title, cur.Genre, cur.Status, cur.Synopsis = s.Title, s.Genre, s.Status, s.Synopsis
	r.stories[s.ID] = cur
	return nil
}

func (r memStories) ListByUser(_ context.Context, ownerID int64) ([]model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Story{}
	for _, s := range r.stories {
		if s.UserID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memStories) Delete(_ context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok && s.UserID == ownerID {
		delete(r.stories, id)
	}
	return nil
}

type memCharacters struct{ *memStore }

func (r memCharacters) Create(_ context.Context, ownerID int64, c *model.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID, c.UserID = r.id(), ownerID
	r.characters[c.ID] = *c
	return nil
}

func (r memCharacters) GetByID(_ context.Context, ownerID, id int64) (*model.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.characters[id]
	if !ok || c.UserID != ownerID {
		return nil, model.ErrNotFound
	}
	return &c, nil
}

func (r memCharacters) Update(_ context.Context, ownerID int64, c *model.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.characters[c.ID]; ok && cur.UserID == ownerID {
		c.UserID = ownerID
		r.characters[c.ID] = *c
	}
	return nil
}

func (r memCharacters) ListByUser(_ context.Context, ownerID int64) ([]model.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Character{}
	for _, c := range r.characters {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCharacters) Delete(_ context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.characters[id]; ok && c.UserID == ownerID {
		delete(r.characters, id)
	}
	return nil
}

type memTraits struct{ *memStore }

func (r memTraits) Add(_ context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.id()
	r.traits[id] = model.Trait{ID: id, UserID: ownerID, Name: name}
	return true, nil
}

func (r memTraits) FindByName(_ context.Context, ownerID int64, name string) (*model.Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *model.Trait
	for _, t := range r.traits {
		if t.UserID == ownerID && t.Name == name && (found == nil || t.ID < found.ID) {
			cp := t
			found = &cp
		}
	}
	if found == nil {
		return nil, model.ErrNotFound
	}
	return found, nil
}

func (r memTraits) RenameByID(_ context.Context, ownerID, id int64, newName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.traits[id]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	t.Name = newName
	r.traits[id] = t
	return true, nil
}

func (r memTraits) Exists(ctx context.Context, ownerID int64, name string) (bool, error) {
	_, err := r.FindByName(ctx, ownerID, name)
	return err == nil, nil
}

func (r memTraits) Delete(_ context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := false
	for id, t := range r.traits {
		if t.UserID == ownerID && t.Name == name {
			delete(r.traits, id)
			deleted = true
		}
	}
	return deleted, nil
}

func (r memTraits) ListByUser(_ context.Context, ownerID int64) ([]model.Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Trait{}
	for _, t := range r.traits {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (memTraits) Close() {}

type ScenarioSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memStore
	users      UserService
	stories    StoryService
	characters CharacterService
	traits     TraitService
	journal    *Journal
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	s.users = NewUserService(memUsers{s.store}, testHasher(s.T()), nopLogger)
	s.stories = NewStoryService(memStories{s.store}, nopLogger)
	s.characters = NewCharacterService(memCharacters{s.store}, nopLogger)
	s.traits = NewTraitService(memTraits{s.store}, nopLogger)
	s.journal = NewJournal(s.stories, s.characters)
}

func (s *ScenarioSuite) login(name, password string) *session.Session {
	sess := session.New()
	require.True(s.T(), s.users.Login(s.ctx, sess, name, password))
	return sess
}

func (s *ScenarioSuite) TestAliceDraftOne() {
	t := s.T()
	require.False(t, s.users.UsernameExists(s.ctx, "alice"))
	require.True(t, s.users.Register(s.ctx, "alice", "a@x.io", "pw1"))
	assert.True(t, s.users.UsernameExists(s.ctx, "alice"))

	sess := s.login("alice", "pw1")

	created, err := s.stories.Create(s.ctx, sess, &model.Story{Title: "Draft One", Genre: "Fantasy", Synopsis: "It begins."})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	list := s.stories.List(s.ctx, sess)
	require.Len(t, list, 1)
	assert.Equal(t, "Draft One", list[0].Title)
	assert.Equal(t, model.StatusDraft, list[0].Status)

	got, ok := s.stories.Get(s.ctx, sess, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Draft One", got.Title)
	assert.Equal(t, "Fantasy", got.Genre)
	assert.Equal(t, "It begins.", got.Synopsis)

	got.Title = "Final"
	got.Status = model.StatusInProgress
	s.stories.Update(s.ctx, sess, got)
	got, ok = s.stories.Get(s.ctx, sess, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, model.StatusInProgress, got.Status)

	s.stories.Delete(s.ctx, sess, created.ID)
	_, ok = s.stories.Get(s.ctx, sess, created.ID)
	assert.False(t, ok)
	assert.Empty(t, s.stories.List(s.ctx, sess))
}

func (s *ScenarioSuite) TestLoginOutcomes() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))

	assert.False(t, s.users.Login(s.ctx, session.New(), "alice", "pw2"))
	assert.False(t, s.users.Login(s.ctx, session.New(), "nobody", "pw1"))
	assert.True(t, s.users.Login(s.ctx, session.New(), "alice", "pw1"))
	assert.False(t, s.users.Register(s.ctx, "alice", "", "other"))
}

func (s *ScenarioSuite) TestUpdateOfMissingStoryIsNoop() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	sess := s.login("alice", "pw1")

	ctx, c := collecting()
	s.stories.Update(ctx, sess, &model.Story{ID: 999, Title: "ghost", Status: model.StatusDraft})
	assert.Empty(t, c.Messages())
	assert.Empty(t, s.stories.List(s.ctx, sess))
}

func (s *ScenarioSuite) TestCharacterLifecycle() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	sess := s.login("alice", "pw1")

	ctx, c := collecting()
	s.characters.Update(ctx, sess, &model.Character{ID: 999, Name: "ghost"})
	assert.Empty(t, c.Messages(), "updating a missing character is a silent no-op")
	assert.Empty(t, s.characters.List(s.ctx, sess))

	created, err := s.characters.Create(s.ctx, sess, &model.Character{Name: "Mira", Description: "Pilot"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, ok := s.characters.Get(s.ctx, sess, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Pilot", got.Description)

	got.Backstory = "Grew up on the docks"
	s.characters.Update(s.ctx, sess, got)
	got, ok = s.characters.Get(s.ctx, sess, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Grew up on the docks", got.Backstory)

	s.characters.Delete(s.ctx, sess, created.ID)
	_, ok = s.characters.Get(s.ctx, sess, created.ID)
	assert.False(t, ok)

	ctx, c = collecting()
	s.characters.Delete(ctx, sess, created.ID)
	assert.Empty(t, c.Messages(), "deleting a missing character is a silent no-op")
}

func (s *ScenarioSuite) TestUsersAreIsolated() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	require.True(t, s.users.Register(s.ctx, "bob", "", "pw2"))
	alice := s.login("alice", "pw1")
	bob := s.login("bob", "pw2")

	story, err := s.stories.Create(s.ctx, alice, &model.Story{Title: "Mine"})
	require.NoError(t, err)
	_, err = s.characters.Create(s.ctx, alice, &model.Character{Name: "Mira"})
	require.NoError(t, err)
	require.True(t, s.traits.Add(s.ctx, alice, "brave"))

	assert.Empty(t, s.stories.List(s.ctx, bob))
	assert.Empty(t, s.characters.List(s.ctx, bob))
	assert.Empty(t, s.traits.List(s.ctx, bob))
	assert.False(t, s.traits.Exists(s.ctx, bob, "brave"))

	_, ok := s.stories.Get(s.ctx, bob, story.ID)
	assert.False(t, ok)
	s.stories.Delete(s.ctx, bob, story.ID)
	_, ok = s.stories.Get(s.ctx, alice, story.ID)
	assert.True(t, ok, "another user's delete does not touch the story")
}

func (s *ScenarioSuite) TestTraitRename() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	sess := s.login("alice", "pw1")

	require.True(t, s.traits.Add(s.ctx, sess, "brave"))
	before := s.traits.List(s.ctx, sess)

	assert.False(t, s.traits.Rename(s.ctx, sess, "missing", "x"))
	assert.Equal(t, before, s.traits.List(s.ctx, sess))

	assert.True(t, s.traits.Rename(s.ctx, sess, "brave", "bold"))
	assert.True(t, s.traits.Exists(s.ctx, sess, "bold"))
	assert.False(t, s.traits.Exists(s.ctx, sess, "brave"))
}

func (s *ScenarioSuite) TestDeleteSelfClearsSession() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	sess := s.login("alice", "pw1")
	id, err := sess.UserID()
	require.NoError(t, err)

	assert.True(t, s.users.DeleteUser(s.ctx, sess, id))
	assert.False(t, sess.Active())
	assert.False(t, s.users.Login(s.ctx, session.New(), "alice", "pw1"))
}

func (s *ScenarioSuite) TestJournal() {
	t := s.T()
	require.True(t, s.users.Register(s.ctx, "alice", "", "pw1"))
	sess := s.login("alice", "pw1")

	story, err := s.journal.Save(s.ctx, sess, &model.Story{Title: "<b>Sea</b> Tales"})
	require.NoError(t, err)
	character, err := s.journal.Save(s.ctx, sess, &model.Character{Name: "Captain"})
	require.NoError(t, err)

	opened, ok := s.journal.Open(s.ctx, sess, model.KindStory, story.EntryID())
	require.True(t, ok)
	assert.Equal(t, model.KindStory, opened.EntryKind())

	_, ok = s.journal.Open(s.ctx, sess, model.KindCharacter, story.EntryID())
	assert.False(t, ok, "kinds do not share ids")

	opened.(*model.Story).Synopsis = "Salt and wind"
	_, err = s.journal.Save(s.ctx, sess, opened)
	require.NoError(t, err)
	again, _ := s.journal.Open(s.ctx, sess, model.KindStory, story.EntryID())
	assert.Equal(t, "Salt and wind", again.(*model.Story).Synopsis)

	assert.Len(t, s.journal.List(s.ctx, sess), 2)
	hits := s.journal.Search(s.ctx, sess, "sea")
	require.Len(t, hits, 1)
	assert.Equal(t, story.EntryID(), hits[0].EntryID())

	s.journal.Delete(s.ctx, sess, character)
	assert.Len(t, s.journal.List(s.ctx, sess), 1)
}
