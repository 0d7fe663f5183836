package collection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/testutil"
)

func TestAddAndRemove(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice").Identity()
	v := testutil.CreateVideo(t, d, "Video", "动漫", testutil.Base)

	require.NoError(t, svc.Add(ctx, u, v.ID))

	ok, err := svc.IsCollected(ctx, u, v.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	err = svc.Add(ctx, u, v.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, svc.Remove(ctx, u, v.ID))
	ok, err = svc.IsCollected(ctx, u, v.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveAbsent(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice").Identity()
	v := testutil.CreateVideo(t, d, "Video", "动漫", testutil.Base)

	err := svc.Remove(ctx, u, v.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	ok, err := svc.IsCollected(ctx, u, v.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddValidation(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice").Identity()

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.Add(ctx, u, 0)))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.Remove(ctx, u, 0)))
	_, err := svc.IsCollected(ctx, u, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Add(ctx, u, 777)))
}

func TestAddConcurrentDuplicate(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice").Identity()
	v := testutil.CreateVideo(t, d, "Video", "动漫", testutil.Base)

	const n = 2
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = svc.Add(ctx, u, v.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	var okCount, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case apperr.KindOf(err) == apperr.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflicts)

	var rows int
	require.NoError(t, d.DB().QueryRow(
		"SELECT COUNT(*) FROM collections WHERE user_id = ? AND video_id = ?", u.UserID, v.ID,
	).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestListCollected(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	alice := testutil.CreateUser(t, d, "alice").Identity()
	bob := testutil.CreateUser(t, d, "bob").Identity()

	v1 := testutil.CreateVideo(t, d, "one", "动漫", testutil.Base)
	v2 := testutil.CreateVideo(t, d, "two", "电影", testutil.Base.Add(time.Minute))
	v3 := testutil.CreateVideo(t, d, "three", "电视剧", testutil.Base.Add(2*time.Minute))

	require.NoError(t, svc.Add(ctx, alice, v2.ID))
	require.NoError(t, svc.Add(ctx, alice, v1.ID))
	require.NoError(t, svc.Add(ctx, alice, v3.ID))
	require.NoError(t, svc.Add(ctx, bob, v3.ID))

	page, err := svc.ListCollected(ctx, alice, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.List, 2)
	assert.Equal(t, v2.ID, page.List[0].ID)
	assert.Equal(t, v1.ID, page.List[1].ID)

	page, err = svc.ListCollected(ctx, alice, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, v3.ID, page.List[0].ID)

	page, err = svc.ListCollected(ctx, bob, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 1, page.Total)
}

func TestListCollectedSkipsDeletedVideos(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	ctx := context.Background()
	u := testutil.CreateUser(t, d, "alice").Identity()

	v1 := testutil.CreateVideo(t, d, "kept", "动漫", testutil.Base)
	v2 := testutil.CreateVideo(t, d, "gone", "动漫", testutil.Base)
	require.NoError(t, svc.Add(ctx, u, v1.ID))
	require.NoError(t, svc.Add(ctx, u, v2.ID))
	require.NoError(t, d.DeleteVideo(ctx, v2.ID))

	page, err := svc.ListCollected(ctx, u, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "kept", page.List[0].Title)
}
