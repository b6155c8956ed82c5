package service

import (
	"CourseForge/internal/service/curriculum"
)

type Collection struct {
	*curriculum.EditorService
}
