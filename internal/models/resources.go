package models

import "time"

// Student registry record. The wire names are inherited from the first
// version of the system and are kept for compatibility with its clients.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Age          int    `json:"idade"`
	Guardians    string `json:"parentes"`
	PhoneNumber  string `json:"numero_de_telefone"`
	SpecialNeeds string `json:"necessidades_especiais"`
	Status       string `json:"status"`
}

// Teacher registry record.
type Teacher struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	SchoolDisciplines string `json:"school_disciplines"`
	Contact           string `json:"contact"`
	PhoneNumber       string `json:"phone_number"`
	Status            string `json:"status"`
}

// Professional is a clinic professional available for appointments.
type Professional struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Specialty   string `json:"specialty"`
	Contact     string `json:"contact"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
}

// Event is a school calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Comments    string    `json:"comments"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// Appointment links a student and a professional on a date.
type Appointment struct {
	ID           string    `json:"id"`
	Specialty    string    `json:"specialty"`
	Comments     string    `json:"comments"`
	Date         time.Time `json:"date"`
	Student      string    `json:"student"`
	Professional string    `json:"professional"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Reminder is the message published for appointments and events whose
// date falls on the next day. It is consumed by the mail sender worker.
type Reminder struct {
	Kind        string    `json:"kind"` // "appointment" or "event"
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Recipient   string    `json:"recipient"`
}
