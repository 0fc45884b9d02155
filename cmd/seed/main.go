package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"syncup/pkg/config"
	"syncup/pkg/database"
	"syncup/pkg/logger"
	"syncup/pkg/models"
	"syncup/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const catImageURL = "https://cataas.com/cat"

type seedUser struct {
	name     string
	email    string
	password string
}

var seedUsers = []seedUser{
	{"Alice Chen", "alice@campus.edu", "password123"},
	{"Bob Okafor", "bob@campus.edu", "password123"},
	{"Charlie Diaz", "charlie@campus.edu", "password123"},
	{"Diana Novak", "diana@campus.edu", "password123"},
	{"Eve Tanaka", "eve@campus.edu", "password123"},
}

var seedPosts = []string{
	"Anyone up for a study group before the algorithms midterm?",
	"The library roof garden is open again!",
	"Lost a blue water bottle near the gym, ping me if you see it.",
	"Robotics club demo day is this Friday, come by.",
}

var seedComments = []string{
	"Count me in!",
	"Great news, thanks for sharing.",
	"See you there.",
}

func main() {
	var withImages bool
	flag.BoolVar(&withImages, "images", false, "Attach a random cat image from cataas.com to every other post (requires S3)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	var images imageSource
	if withImages {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		images = &catImages{
			httpClient: &http.Client{Timeout: 30 * time.Second},
			s3Client:   s3Client,
			log:        log,
		}
	}

	if err := seedDatabase(db, images, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

type imageSource interface {
	Fetch(userID int64, index int) (string, error)
}

func seedDatabase(db *gorm.DB, images imageSource, log *logger.Logger) error {
	users := make([]models.User, 0, len(seedUsers))

	for _, userData := range seedUsers {
		var existing models.User
		if err := db.Where("email = ?", userData.email).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", userData.email)
			users = append(users, existing)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := models.User{
			Name:         userData.name,
			Email:        userData.email,
			PasswordHash: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		log.Info("Created user: %s (%s)", user.Name, user.Email)
		users = append(users, user)

		if err := createPosts(db, images, user, len(users)-1, log); err != nil {
			return err
		}
	}

	var posts []models.Post
	if err := db.Where("visibility = ?", models.VisibilityPublic).Order("post_id").Find(&posts).Error; err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	likes, comments := engagement(users, posts)
	if len(likes) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&likes).Error; err != nil {
			return fmt.Errorf("failed to create likes: %w", err)
		}
	}
	for i := range comments {
		var count int64
		db.Model(&models.Comment{}).
			Where("post_id = ? AND user_id = ? AND content = ?", comments[i].PostID, comments[i].UserID, comments[i].Content).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&comments[i]).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}

	log.Info("Seeded %d likes and %d comments", len(likes), len(comments))
	return nil
}

func createPosts(db *gorm.DB, images imageSource, user models.User, userIndex int, log *logger.Logger) error {
	postsCount := 2 + userIndex%3
	for i := 0; i < postsCount; i++ {
		post := models.Post{
			UserID:  user.ID,
			Content: seedPosts[(userIndex+i)%len(seedPosts)],
		}
		// Every user gets one club post so the feed has something to hide.
		if i == postsCount-1 {
			clubID := int64(userIndex%2 + 1)
			post.ClubID = &clubID
			post.Visibility = models.VisibilityClubOnly
		}

		if images != nil && i%2 == 0 {
			imageURL, err := images.Fetch(user.ID, i)
			if err != nil {
				log.Warn("Skipping image for post %d of %s: %v", i+1, user.Name, err)
			} else {
				post.ImageURL = &imageURL
			}
		}

		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post for %s: %w", user.Name, err)
		}
		log.Info("Created post %d by %s", post.ID, user.Name)
	}
	return nil
}

// engagement has every user like the public posts of the next user in the
// list and leave a comment on their first one.
func engagement(users []models.User, posts []models.Post) ([]models.Like, []models.Comment) {
	var likes []models.Like
	var comments []models.Comment
	if len(users) < 2 {
		return likes, comments
	}

	for i, user := range users {
		target := users[(i+1)%len(users)]
		commented := false
		for _, post := range posts {
			if post.UserID != target.ID {
				continue
			}
			likes = append(likes, models.Like{UserID: user.ID, PostID: post.ID})
			if !commented {
				comments = append(comments, models.Comment{
					PostID:  post.ID,
					UserID:  user.ID,
					Content: seedComments[i%len(seedComments)],
				})
				commented = true
			}
		}
	}
	return likes, comments
}

type catImages struct {
	httpClient *http.Client
	s3Client   *s3.Client
	log        *logger.Logger
}

func (c *catImages) Fetch(userID int64, index int) (string, error) {
	resp, err := c.httpClient.Get(catImageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch cat image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	contentType := http.DetectContentType(imageData)
	fileKey := fmt.Sprintf("posts/%d/seed_%d", userID, index)
	imageURL, err := c.s3Client.UploadFile(fileKey, bytes.NewReader(imageData), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	c.log.Info("Uploaded seed image: %s", imageURL)
	return imageURL, nil
}
