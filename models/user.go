package models

import "time"

type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uk_users_email" json:"email"`
	Username  string    `gorm:"column:username;type:varchar(150);not null;uniqueIndex:uk_users_username" json:"username"`
	FirstName string    `gorm:"column:first_name;type:varchar(150);not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(150);not null" json:"last_name"`
	Password  string    `gorm:"column:password;type:varchar(128);not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Follow 作者订阅关系
// 唯一键: follower_id + author_id
// 不能关注自己：postgres 上由 chk_follow_not_self 约束，其余库由服务层校验
type Follow struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FollowerID uint64    `gorm:"column:follower_id;not null;uniqueIndex:uk_follow_pair,priority:1" json:"follower_id"`
	AuthorID   uint64    `gorm:"column:author_id;not null;uniqueIndex:uk_follow_pair,priority:2;index" json:"author_id"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
