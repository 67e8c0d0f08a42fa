package service

import (
	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"
	"github.com/boygear/toDoListWithWebFlux/internal/dto"
)

// ToDto maps a stored task to its wire form.
func ToDto(t dom.Task) dto.TaskDto {
	return dto.TaskDto{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CreationDate: dto.NewTimestamp(t.CreationDate),
		TaskStatus:   t.TaskStatus,
	}
}

// ToEntity maps a wire task to its stored form.
func ToEntity(d dto.TaskDto) dom.Task {
	return dom.Task{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		CreationDate: d.CreationDate.Ptr(),
		TaskStatus:   d.TaskStatus,
	}
}
