package main

import (
	"context"
	"errors"
	"testing"

	"github.com/MikeMC777/foodorders/internal/config"
)

// con amqp el inbox lo escribe notify-worker en Mongo; memoria no lo vería
func TestOpenUsers_MemoryRequiresInlineNotify(t *testing.T) {
	_, _, err := openUsers(context.Background(), config.Config{MongoURI: "memory", NotifyMode: "amqp"})
	if !errors.Is(err, errMemoryUsersWithWorker) {
		t.Fatalf("esperaba errMemoryUsersWithWorker, real=%v", err)
	}

	repo, closeFn, err := openUsers(context.Background(), config.Config{MongoURI: "memory", NotifyMode: "inline"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	defer closeFn()
	if repo == nil {
		t.Fatalf("repo nil")
	}
}
