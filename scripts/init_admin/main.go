package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/logger"
	"github.com/revanew/site/internal/store"
)

func main() {
	var username, password string
	flag.StringVar(&username, "username", "admin", "admin username")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	if password == "" {
		log.Fatal("a password is required: pass -password or set ADMIN_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}

	// 初始化数据库
	client, err := store.Open(cfg.Store, logr)
	if err != nil {
		log.Fatalf("open content store: %v", err)
	}
	defer client.Close()

	gdb, err := client.Privileged().Write(context.Background())
	if err != nil {
		log.Fatalf("admin accounts need a configured store and service key: %v", err)
	}

	// 检查是否已存在用户
	var existing db.User
	if err := gdb.Where("username = ?", username).Limit(1).Find(&existing).Error; err != nil {
		log.Fatalf("look up user: %v", err)
	}
	if existing.ID != 0 {
		fmt.Printf("user %q already exists with role %q, nothing to do\n", existing.Username, existing.Role)
		return
	}

	if err := db.EnsureAdmin(gdb, username, password); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("admin user %q created\n", username)
}
