package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tanvir-dev/versebook/backend/internal/models"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the handler tests. They mirror the
// Mongo implementations' observable behavior, including the paired
// set-membership/$inc semantics of likes.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	user, ok := r.users[objID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.Username = user.Username
	stored.Bio = user.Bio
	stored.Avatar = user.Avatar
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SearchUsers(_ context.Context, query string) ([]models.User, error) {
	q := strings.ToLower(query)
	users := []models.User{}
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), q) || strings.Contains(strings.ToLower(user.Bio), q) {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if !containsObjectID(user.Following, targetID) {
		user.Following = append(user.Following, targetID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Following = removeObjectID(user.Following, targetID)
	return nil
}

func (r *fakeUserRepo) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if !containsObjectID(user.Followers, followerID) {
		user.Followers = append(user.Followers, followerID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Followers = removeObjectID(user.Followers, followerID)
	return nil
}

func removeObjectID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type fakePoemRepo struct {
	poems map[primitive.ObjectID]*models.Poem
	clock time.Time
}

func newFakePoemRepo() *fakePoemRepo {
	return &fakePoemRepo{
		poems: make(map[primitive.ObjectID]*models.Poem),
		clock: time.Now(),
	}
}

// tick hands out strictly increasing creation times
func (r *fakePoemRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *fakePoemRepo) CreatePoem(_ context.Context, poem *models.Poem) error {
	poem.ID = primitive.NewObjectID()
	if poem.Tags == nil {
		poem.Tags = []string{}
	}
	poem.Likes = []primitive.ObjectID{}
	poem.LikesCount = 0
	poem.CommentsCount = 0
	poem.CreatedAt = r.tick()
	poem.UpdatedAt = poem.CreatedAt
	r.poems[poem.ID] = poem
	return nil
}

func (r *fakePoemRepo) GetPoemByID(_ context.Context, id string) (*models.Poem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	poem, ok := r.poems[objID]
	if !ok {
		return nil, repositories.ErrPoemNotFound
	}
	copied := *poem
	return &copied, nil
}

func (r *fakePoemRepo) matches(poem *models.Poem, opts repositories.ListPoemsOptions) bool {
	if opts.Category != "" && poem.Category != opts.Category {
		return false
	}
	if opts.Featured != nil && poem.Featured != *opts.Featured {
		return false
	}
	if opts.Author != "" && poem.Author.Hex() != opts.Author {
		return false
	}
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		hit := strings.Contains(strings.ToLower(poem.Title), q) ||
			strings.Contains(strings.ToLower(poem.Content), q)
		for _, tag := range poem.Tags {
			hit = hit || strings.Contains(strings.ToLower(tag), q)
		}
		if !hit {
			return false
		}
	}
	return true
}

func (r *fakePoemRepo) ListPoems(_ context.Context, opts repositories.ListPoemsOptions) ([]models.Poem, error) {
	matched := []models.Poem{}
	for _, poem := range r.poems {
		if r.matches(poem, opts) {
			matched = append(matched, *poem)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		switch opts.Sort {
		case repositories.SortPopular:
			if matched[i].LikesCount != matched[j].LikesCount {
				return matched[i].LikesCount > matched[j].LikesCount
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		case repositories.SortDiscussed:
			if matched[i].CommentsCount != matched[j].CommentsCount {
				return matched[i].CommentsCount > matched[j].CommentsCount
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		case repositories.SortTitle:
			return matched[i].Title < matched[j].Title
		default:
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
	})

	if opts.Skip > int64(len(matched)) {
		return []models.Poem{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(matched)) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *fakePoemRepo) CountPoems(_ context.Context, opts repositories.ListPoemsOptions) (int64, error) {
	var count int64
	for _, poem := range r.poems {
		if r.matches(poem, opts) {
			count++
		}
	}
	return count, nil
}

func (r *fakePoemRepo) UpdatePoem(_ context.Context, id string, poem *models.Poem) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrInvalidID
	}
	stored, ok := r.poems[objID]
	if !ok {
		return repositories.ErrPoemNotFound
	}
	stored.Title = poem.Title
	stored.Content = poem.Content
	stored.Category = poem.Category
	stored.Tags = poem.Tags
	stored.Image = poem.Image
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakePoemRepo) DeletePoem(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrInvalidID
	}
	if _, ok := r.poems[objID]; !ok {
		return repositories.ErrPoemNotFound
	}
	delete(r.poems, objID)
	return nil
}

func (r *fakePoemRepo) AddLike(_ context.Context, poemID string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	poem, ok := r.poems[objID]
	if !ok {
		return nil // Mongo UpdateOne matches nothing
	}
	if !containsObjectID(poem.Likes, userID) {
		poem.Likes = append(poem.Likes, userID)
		poem.LikesCount++
	}
	return nil
}

func (r *fakePoemRepo) RemoveLike(_ context.Context, poemID string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	poem, ok := r.poems[objID]
	if !ok {
		return nil
	}
	if containsObjectID(poem.Likes, userID) {
		poem.Likes = removeObjectID(poem.Likes, userID)
		poem.LikesCount--
	}
	return nil
}

func (r *fakePoemRepo) HasUserLikedPoem(_ context.Context, poemID string, userID primitive.ObjectID) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return false, repositories.ErrInvalidID
	}
	poem, ok := r.poems[objID]
	if !ok {
		return false, nil
	}
	return containsObjectID(poem.Likes, userID), nil
}

func (r *fakePoemRepo) IncrementCommentsCount(_ context.Context, poemID string) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	if poem, ok := r.poems[objID]; ok {
		poem.CommentsCount++
	}
	return nil
}

func (r *fakePoemRepo) SetFeatured(_ context.Context, poemID string, featured bool) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	poem, ok := r.poems[objID]
	if !ok {
		return repositories.ErrPoemNotFound
	}
	poem.Featured = featured
	return nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[primitive.ObjectID]*models.Comment),
		clock:    time.Now(),
	}
}

func (r *fakeCommentRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.Replies = []primitive.ObjectID{}
	comment.CreatedAt = r.tick()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}
	comment, ok := r.comments[objID]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) GetTopLevelByPoemID(_ context.Context, poemID primitive.ObjectID) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, comment := range r.comments {
		if comment.PoemID == poemID && comment.Parent == nil {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *fakeCommentRepo) GetCommentsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, id := range ids {
		if comment, ok := r.comments[id]; ok {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *fakeCommentRepo) AppendReply(_ context.Context, parentID, replyID primitive.ObjectID) error {
	parent, ok := r.comments[parentID]
	if !ok {
		return repositories.ErrCommentNotFound
	}
	parent.Replies = append(parent.Replies, replyID)
	return nil
}

func (r *fakeCommentRepo) DeleteByPoemID(_ context.Context, poemID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, comment := range r.comments {
		if comment.PoemID == poemID {
			delete(r.comments, id)
			deleted++
		}
	}
	return deleted, nil
}
