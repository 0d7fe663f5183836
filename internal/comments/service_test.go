package comments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/testutil"
)

func TestRootAndReplyThread(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d)
	ctx := context.Background()

	alice := testutil.CreateUser(t, d, "alice")
	bob := testutil.CreateUser(t, d, "bob")
	v := testutil.CreateVideo(t, d, "Video", "动漫", testutil.Base)

	root, err := svc.PublishRoot(ctx, alice.Identity(), v.ID, "这个视频太棒了！")
	require.NoError(t, err)
	reply, err := svc.PublishReply(ctx, bob.Identity(), root.ID, "我也觉得！")
	require.NoError(t, err)
	assert.Equal(t, v.ID, reply.VideoID)

	thread, err := svc.ListThread(ctx, v.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, thread.Total)
	require.Len(t, thread.List, 1)
	got := thread.List[0]
	assert.Equal(t, root.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.ParentID)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, reply.ID, got.Replies[0].ID)
	assert.Equal(t, "bob", got.Replies[0].Username)
	require.NotNil(t, got.Replies[0].ParentID)
	assert.Equal(t, root.ID, *got.Replies[0].ParentID)
}

func TestThreadOrdering(t *testing.T) {
	d := testutil.NewDatabase(t)
	now := testutil.Base
	d.SetClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	svc := NewService(d)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice")

	first, err := svc.PublishRoot(ctx, u.Identity(), 1, "first")
	require.NoError(t, err)
	second, err := svc.PublishRoot(ctx, u.Identity(), 1, "second")
	require.NoError(t, err)
	r1, err := svc.PublishReply(ctx, u.Identity(), first.ID, "r1")
	require.NoError(t, err)
	r2, err := svc.PublishReply(ctx, u.Identity(), first.ID, "r2")
	require.NoError(t, err)
	_, err = svc.PublishRoot(ctx, u.Identity(), 2, "other video")
	require.NoError(t, err)

	thread, err := svc.ListThread(ctx, 1)
	require.NoError(t, err)

	// Total counts roots only.
	assert.Equal(t, 2, thread.Total)
	require.Len(t, thread.List, 2)
	assert.Equal(t, second.ID, thread.List[0].ID)
	assert.Empty(t, thread.List[0].Replies)
	assert.NotNil(t, thread.List[0].Replies)
	assert.Equal(t, first.ID, thread.List[1].ID)
	require.Len(t, thread.List[1].Replies, 2)
	assert.Equal(t, r1.ID, thread.List[1].Replies[0].ID)
	assert.Equal(t, r2.ID, thread.List[1].Replies[1].ID)
}

// Replies to replies are accepted but ListThread renders only one level of nesting.
func TestReplyToReplyIsOmittedFromThread(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice")

	root, err := svc.PublishRoot(ctx, u.Identity(), 3, "root")
	require.NoError(t, err)
	reply, err := svc.PublishReply(ctx, u.Identity(), root.ID, "reply")
	require.NoError(t, err)
	nested, err := svc.PublishReply(ctx, u.Identity(), reply.ID, "reply to reply")
	require.NoError(t, err)
	assert.Equal(t, int64(3), nested.VideoID)

	thread, err := svc.ListThread(ctx, 3)
	require.NoError(t, err)
	require.Len(t, thread.List, 1)
	require.Len(t, thread.List[0].Replies, 1)
	assert.Equal(t, reply.ID, thread.List[0].Replies[0].ID)
	for _, r := range thread.List[0].Replies {
		assert.NotEqual(t, nested.ID, r.ID)
	}
}

func TestPublishValidation(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice")

	_, err := svc.PublishRoot(ctx, u.Identity(), 1, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.PublishReply(ctx, u.Identity(), 1, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.PublishReply(ctx, u.Identity(), 999, "hello")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// PublishRoot does not check that the video exists.
func TestPublishRootUnknownVideo(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d)
	u := testutil.CreateUser(t, d, "alice")

	c, err := svc.PublishRoot(context.Background(), u.Identity(), 424242, "first!")
	require.NoError(t, err)
	assert.Positive(t, c.ID)

	thread, err := svc.ListThread(context.Background(), 424242)
	require.NoError(t, err)
	assert.Equal(t, 1, thread.Total)
}

func TestListThreadEmpty(t *testing.T) {
	svc := NewService(testutil.NewDatabase(t))

	thread, err := svc.ListThread(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, thread.Total)
	assert.NotNil(t, thread.List)
}
