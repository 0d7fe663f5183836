package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/testutil"
)

func TestListVideosByCategory(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)

	testutil.CreateVideo(t, d, "测试视频1 - 动漫", "动漫", testutil.Base)
	testutil.CreateVideo(t, d, "测试视频2 - 电影", "电影", testutil.Base.Add(time.Minute))
	testutil.CreateVideo(t, d, "测试视频4 - 动漫", "动漫", testutil.Base.Add(2*time.Minute))
	testutil.CreateVideo(t, d, "动漫特辑", "动漫剧场", testutil.Base.Add(3*time.Minute))

	page, err := svc.ListVideos(context.Background(), ListQuery{Page: 1, Limit: 10, Category: "动漫"})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 1, page.Pages)
	require.Len(t, page.List, 2)
	for _, v := range page.List {
		assert.Equal(t, "动漫", v.Category)
	}
	assert.Equal(t, "测试视频4 - 动漫", page.List[0].Title)
	assert.True(t, page.List[0].UpdateTime.After(page.List[1].UpdateTime))
}

func TestListVideosPagination(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	for i := 0; i < 23; i++ {
		testutil.CreateVideo(t, d, fmt.Sprintf("Video %02d", i), "电影", testutil.Base.Add(time.Duration(i)*time.Second))
	}
	ctx := context.Background()

	page, err := svc.ListVideos(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Len(t, page.List, 10)
	assert.Equal(t, "Video 22", page.List[0].Title)

	page, err = svc.ListVideos(ctx, ListQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.List, 3)
	assert.Equal(t, "Video 00", page.List[2].Title)

	page, err = svc.ListVideos(ctx, ListQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.List)
	assert.NotNil(t, page.List)

	page, err = svc.ListVideos(ctx, ListQuery{Keyword: "Video 1"})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total)
}

func TestListVideosEmpty(t *testing.T) {
	svc := NewService(testutil.NewDatabase(t), 10, 100)

	page, err := svc.ListVideos(context.Background(), ListQuery{Category: "纪录片"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.Pages)
	assert.Empty(t, page.List)
}

func TestGetVideoDetail(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	v := testutil.CreateVideo(t, d, "Detail", "电影", testutil.Base)
	ctx := context.Background()

	got, err := svc.GetVideoDetail(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)
	assert.Equal(t, "Detail", got.Title)

	got, err = svc.GetVideoDetail(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)

	for _, id := range []int64{0, -1, v.ID + 100} {
		_, err := svc.GetVideoDetail(ctx, id)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "id %d", id)
	}
}

func TestGetVideoDetailConcurrent(t *testing.T) {
	d := testutil.NewDatabase(t)
	svc := NewService(d, 10, 100)
	v := testutil.CreateVideo(t, d, "Hot", "动漫", testutil.Base)

	const n = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetVideoDetail(context.Background(), v.ID); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Empty(t, failures)

	got, err := d.GetVideoByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, n, got.Views)
}
