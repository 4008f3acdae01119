package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/cache"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/testutil"
	"github.com/d60-Lab/social-feed/pkg/password"
)

type fixture struct {
	db       *gorm.DB
	clock    *testutil.Clock
	users    UserService
	posts    PostService
	likes    LikeService
	comments CommentService
	rels     RelationshipService
	feed     FeedService
}

func newFixture(t *testing.T, counts cache.FollowCounts) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewClock()
	opt := repository.WithClock(clock.Now)

	userRepo := repository.NewUserRepository(db, opt)
	postRepo := repository.NewPostRepository(db, opt)
	likeRepo := repository.NewLikeRepository(db, opt)
	commentRepo := repository.NewCommentRepository(db, opt)
	followRepo := repository.NewFollowRepository(db, opt)

	return &fixture{
		db:       db,
		clock:    clock,
		users:    NewUserService(userRepo, password.NewBcrypt(bcrypt.MinCost)),
		posts:    NewPostService(postRepo),
		likes:    NewLikeService(likeRepo, postRepo),
		comments: NewCommentService(commentRepo, postRepo),
		rels:     NewRelationshipService(followRepo, counts),
		feed:     NewFeedService(repository.NewFeedRepository(db)),
	}
}

func firstPage() pagination.Params { return pagination.Default() }

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
