package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sakura-comic/backend/internal/db/models"
)

const demoVideoURL = "http://vjs.zencdn.net/v/oceans.mp4"

var demoVideos = []models.Video{
	{Title: "测试视频1 - 动漫", CoverURL: "/imgs/1.jpg", VideoURL: demoVideoURL, Category: "动漫", Description: "这是一部精彩的动漫", ReleaseYear: 2023},
	{Title: "测试视频2 - 电影", CoverURL: "/imgs/2.jpg", VideoURL: demoVideoURL, Category: "电影", Description: "这是一部精彩的电影", ReleaseYear: 2022},
	{Title: "测试视频3 - 电视剧", CoverURL: "/imgs/b1.jpg", VideoURL: demoVideoURL, Category: "电视剧", Description: "这是一部精彩的电视剧", ReleaseYear: 2021},
	{Title: "测试视频4 - 动漫", CoverURL: "/imgs/b2.jpg", VideoURL: demoVideoURL, Category: "动漫", Description: "这是一部精彩的动漫", ReleaseYear: 2023},
	{Title: "测试视频5 - 电影", CoverURL: "/imgs/b3.jpg", VideoURL: demoVideoURL, Category: "电影", Description: "这是一部精彩的电影", ReleaseYear: 2022},
	{Title: "测试视频6 - 电视剧", CoverURL: "/imgs/b4.jpg", VideoURL: demoVideoURL, Category: "电视剧", Description: "这是一部精彩的电视剧", ReleaseYear: 2021},
}

// DemoUsername is the account created by SeedDemoData.
const DemoUsername = "testuser"

// SeedDemoData fills empty tables with a small demo catalog, one user, a short
// comment thread and one collection. Tables that already hold rows are left alone.
// passwordHash is the hashed password for the demo user.
func (d *Database) SeedDemoData(ctx context.Context, passwordHash string) error {
	videos, err := d.CountVideos(ctx)
	if err != nil {
		return err
	}
	if videos == 0 {
		base := d.now()
		for i := range demoVideos {
			v := demoVideos[i]
			v.UpdateTime = base.Add(time.Duration(i) * time.Second)
			if _, err := d.CreateVideo(ctx, &v); err != nil {
				return fmt.Errorf("seed video: %w", err)
			}
		}
	}

	users, err := d.CountUsers(ctx)
	if err != nil {
		return err
	}
	if users > 0 {
		return nil
	}
	userID, err := d.CreateUser(ctx, DemoUsername, passwordHash)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	first := &models.Comment{UserID: userID, VideoID: 1, Content: "这个视频太棒了！"}
	if err := d.CreateComment(ctx, first); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}
	if err := d.CreateComment(ctx, &models.Comment{UserID: userID, VideoID: 1, Content: "期待下一集！"}); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}
	if err := d.CreateComment(ctx, &models.Comment{UserID: userID, VideoID: 1, Content: "我也觉得！", ParentID: &first.ID}); err != nil {
		return fmt.Errorf("seed reply: %w", err)
	}
	if err := d.CreateCollection(ctx, userID, 1); err != nil {
		return fmt.Errorf("seed collection: %w", err)
	}
	return nil
}
