package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lessonctl/internal/content"
)

var (
	_ list.Item = lessonCategoryItem{}
	_ list.Item = videoCategoryItem{}
)

// lessonCategoryItem wraps a lesson category name to implement [list.Item].
type lessonCategoryItem struct {
	name string
}

func (i lessonCategoryItem) FilterValue() string { return i.name }
func (i lessonCategoryItem) Title() string       { return i.name }
func (i lessonCategoryItem) Description() string { return content.CategorySlug(i.name) }

// videoCategoryItem wraps a [content.VideoCategory] to implement [list.Item].
type videoCategoryItem struct {
	category content.VideoCategory
}

func (i videoCategoryItem) FilterValue() string { return i.category.Label }
func (i videoCategoryItem) Title() string       { return i.category.Label }
func (i videoCategoryItem) Description() string { return i.category.Key }

func newLessonCategoryList(width, height int) list.Model {
	items := make([]list.Item, len(content.LessonCategories))
	for i, name := range content.LessonCategories {
		items[i] = lessonCategoryItem{name: name}
	}
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Lesson Category"
	return l
}

func newVideoCategoryList(width, height int) list.Model {
	items := make([]list.Item, len(content.VideoCategories))
	for i, cat := range content.VideoCategories {
		items[i] = videoCategoryItem{category: cat}
	}
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Video Category"
	return l
}
