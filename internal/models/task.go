package models

// Task is a to-do item owned by exactly one user. DueDate is an
// optional date string as entered by the client (task list or calendar).
type Task struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	Title     string  `gorm:"not null" json:"title"`
	Completed bool    `gorm:"not null;default:false" json:"completed"`
	DueDate   *string `json:"due_date"`
}
