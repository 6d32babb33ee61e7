// Package store persists users and their item boxes in Postgres. The live
// draft itself is never persisted; boxes are what players bring to one.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DiscordID string    `gorm:"uniqueIndex;not null" json:"discordId"`
	Username  string    `gorm:"not null" json:"username"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Box is a named, ordered list of item ids owned by one user.
type Box struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Name      string    `gorm:"not null" json:"name"`
	Items     []BoxItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BoxItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	BoxID    uint   `gorm:"index;not null" json:"-"`
	ItemID   string `gorm:"not null" json:"itemId"`
	Position int    `json:"position"`
}

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&User{}, &Box{}, &BoxItem{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// UpsertUser creates or refreshes the user for a Discord identity.
func (s *Store) UpsertUser(discordID, username, avatarURL string) (*User, error) {
	var u User
	err := s.db.Where(&User{DiscordID: discordID}).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = User{DiscordID: discordID, Username: username, AvatarURL: avatarURL}
		if err := s.db.Create(&u).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &u, nil
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.Username = username
	u.AvatarURL = avatarURL
	if err := s.db.Save(&u).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUser(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListBoxes(userID uint) ([]Box, error) {
	var boxes []Box
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		Order("id").
		Find(&boxes).Error
	if err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	return boxes, nil
}

func (s *Store) GetBox(userID, boxID uint) (*Box, error) {
	var box Box
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		First(&box, boxID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find box: %w", err)
	}
	return &box, nil
}

func (s *Store) CreateBox(userID uint, name string, items []string) (*Box, error) {
	box := Box{UserID: userID, Name: name, Items: boxItems(items)}
	if err := s.db.Create(&box).Error; err != nil {
		return nil, fmt.Errorf("create box: %w", err)
	}
	return &box, nil
}

// UpdateBox replaces the box's name and items wholesale.
func (s *Store) UpdateBox(userID, boxID uint, name string, items []string) (*Box, error) {
	box, err := s.GetBox(userID, boxID)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("box_id = ?", box.ID).Delete(&BoxItem{}).Error; err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		box.Name = name
		box.Items = boxItems(items)
		for i := range box.Items {
			box.Items[i].BoxID = box.ID
		}
		if err := tx.Save(box).Error; err != nil {
			return fmt.Errorf("save box: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return box, nil
}

func (s *Store) DeleteBox(userID, boxID uint) error {
	res := s.db.Where("user_id = ?", userID).Delete(&Box{}, boxID)
	if res.Error != nil {
		return fmt.Errorf("delete box: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.db.Where("box_id = ?", boxID).Delete(&BoxItem{}).Error
}

func boxItems(items []string) []BoxItem {
	out := make([]BoxItem, 0, len(items))
	for i, id := range items {
		out = append(out, BoxItem{ItemID: id, Position: i})
	}
	return out
}

// NormalizeItems trims whitespace, drops empties, and removes duplicates
// while preserving the first occurrence's position.
func NormalizeItems(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, raw := range items {
		id := strings.TrimSpace(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
