package main

import (
	"log"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	"github.com/lostconnect/backend/mailingservices"
	"github.com/lostconnect/backend/server"
	"github.com/lostconnect/backend/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	reactionRepo := db.NewReactionRepo(gormDB)
	categoryRepo := db.NewCategoryRepo(gormDB)
	mediaRepo := db.NewMediaRepo()

	mediaService := services.NewMediaService(mediaRepo, conf)
	authService := services.NewAuthService(authRepo, conf)
	postService := services.NewPostService(postRepo, categoryRepo, mediaService, conf)
	commentService := services.NewCommentService(commentRepo, postRepo, mediaService, conf)
	reactionService := services.NewReactionService(reactionRepo, postRepo, conf)
	categoryService := services.NewCategoryService(categoryRepo, conf)

	s := &server.Server{
		Config:             conf,
		Mail:               mailgunClient,
		DB:                 *gormDB,
		AuthRepository:     authRepo,
		AuthService:        authService,
		PostRepository:     postRepo,
		PostService:        postService,
		CommentRepository:  commentRepo,
		CommentService:     commentService,
		ReactionRepository: reactionRepo,
		ReactionService:    reactionService,
		CategoryRepository: categoryRepo,
		CategoryService:    categoryService,
		MediaService:       mediaService,
	}

	s.Start()
}
