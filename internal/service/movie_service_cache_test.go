package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"watchlist-foodlens-service/internal/cache"
	"watchlist-foodlens-service/internal/repository"
)

func newCachedMovieService(t *testing.T) (*MovieService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewMovieService(repository.NewMemoryMovieRepository(), cache.New(rdb)), mr
}

func TestCachedListSeesWrites(t *testing.T) {
	ctx := context.Background()
	svc, mr := newCachedMovieService(t)

	list, err := svc.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if !mr.Exists(movieListCacheKey) {
		t.Fatalf("list was not cached, keys = %q", mr.Keys())
	}

	created, err := svc.Create(ctx, validInput("Heat"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("List after Create = %+v", list)
	}

	in := validInput("Heat")
	in.Genre = strPtr("Crime")
	if _, err := svc.Update(ctx, created.ID, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 1 || list[0].Genre != "Crime" {
		t.Errorf("List after Update = %+v", list)
	}

	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 0 {
		t.Errorf("List after Delete = %+v", list)
	}
}

func TestCachedGetDroppedAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc, mr := newCachedMovieService(t)

	created, _ := svc.Create(ctx, validInput("Ran"))
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !mr.Exists(detailCacheKey(created.ID)) {
		t.Fatalf("detail was not cached, keys = %q", mr.Keys())
	}

	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists(detailCacheKey(created.ID)) {
		t.Error("detail key survived Delete")
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}
}

func TestCachedGetSeesUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCachedMovieService(t)

	created, _ := svc.Create(ctx, validInput("Ikiru"))
	svc.Get(ctx, created.ID)

	watched := true
	in := validInput("Ikiru")
	in.Watched = &watched
	if _, err := svc.Update(ctx, created.ID, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil || !got.Watched {
		t.Errorf("Get after Update = %+v, %v", got, err)
	}
}
