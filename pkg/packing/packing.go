package packing

import (
	"errors"
	"slices"
	"strings"
)

const maxNameLength = 255

var (
	ErrListNotFound     = errors.New("packing list not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrItemExists       = errors.New("item already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidName      = errors.New("invalid name")
)

type Category struct {
	Name  string
	Items []string
}

// List keeps the ordered categories and, separately, the checked state of every item.
// Item names are unique across the whole list.
type List struct {
	Categories []Category
	Checked    map[string]bool
}

func NewList(categories []Category) List {
	l := List{Categories: make([]Category, 0, len(categories)), Checked: make(map[string]bool)}
	for _, c := range categories {
		l.Categories = append(l.Categories, Category{Name: c.Name, Items: slices.Clone(c.Items)})
		for _, item := range c.Items {
			l.Checked[item] = false
		}
	}
	return l
}

func (l List) ItemCount() int {
	count := 0
	for _, c := range l.Categories {
		count += len(c.Items)
	}
	return count
}

func (l List) CheckedCount() int {
	count := 0
	for _, checked := range l.Checked {
		if checked {
			count++
		}
	}
	return count
}

// Progress is the share of checked items, 0 for an empty list.
func (l List) Progress() float64 {
	total := l.ItemCount()
	if total == 0 {
		return 0
	}
	return float64(l.CheckedCount()) / float64(total)
}

func (l List) clone() List {
	c := List{Categories: make([]Category, len(l.Categories)), Checked: make(map[string]bool, len(l.Checked))}
	for i, cat := range l.Categories {
		c.Categories[i] = Category{Name: cat.Name, Items: slices.Clone(cat.Items)}
	}
	for k, v := range l.Checked {
		c.Checked[k] = v
	}
	return c
}

func (l *List) categoryIndex(name string) int {
	return slices.IndexFunc(l.Categories, func(c Category) bool { return c.Name == name })
}

func (l *List) setChecked(item string, checked bool) error {
	if _, ok := l.Checked[item]; !ok {
		return ErrItemNotFound
	}
	l.Checked[item] = checked
	return nil
}

func (l *List) addCategory(name string) error {
	if l.categoryIndex(name) >= 0 {
		return ErrCategoryExists
	}
	l.Categories = append(l.Categories, Category{Name: name})
	return nil
}

func (l *List) removeCategory(name string) error {
	i := l.categoryIndex(name)
	if i < 0 {
		return ErrCategoryNotFound
	}
	for _, item := range l.Categories[i].Items {
		delete(l.Checked, item)
	}
	l.Categories = slices.Delete(l.Categories, i, i+1)
	return nil
}

// addItem appends item to category, creating the category when it does not exist yet.
func (l *List) addItem(category string, item string) error {
	if _, ok := l.Checked[item]; ok {
		return ErrItemExists
	}
	i := l.categoryIndex(category)
	if i < 0 {
		l.Categories = append(l.Categories, Category{Name: category})
		i = len(l.Categories) - 1
	}
	l.Categories[i].Items = append(l.Categories[i].Items, item)
	l.Checked[item] = false
	return nil
}

func (l *List) removeItem(category string, item string) error {
	i := l.categoryIndex(category)
	if i < 0 {
		return ErrItemNotFound
	}
	j := slices.Index(l.Categories[i].Items, item)
	if j < 0 {
		return ErrItemNotFound
	}
	l.Categories[i].Items = slices.Delete(l.Categories[i].Items, j, j+1)
	delete(l.Checked, item)
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	// names travel as single path segments in the item and category routes
	if name == "" || len(name) > maxNameLength || strings.Contains(name, "/") {
		return "", ErrInvalidName
	}
	return name, nil
}

// DefaultCategories is the list every new session starts from.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Documents", Items: []string{"Passport", "Flight tickets", "Hotel confirmations", "JR Pass", "Travel insurance", "Yen cash"}},
		{Name: "Clothing", Items: []string{"Down jacket", "Thermal underwear", "Wool socks", "Gloves", "Beanie", "Scarf"}},
		{Name: "Electronics", Items: []string{"Phone charger", "Power bank", "Plug adapter", "Camera"}},
		{Name: "Toiletries", Items: []string{"Toothbrush", "Moisturizer", "Lip balm", "Medicine"}},
		{Name: "Snow gear", Items: []string{"Snow boots", "Shoe spikes", "Hand warmers", "Sunglasses"}},
	}
}
