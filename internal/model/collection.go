package model

import "strings"

// Collection is the ordered set of habits. Its order is the display order
// and is what drag-reorder persists; it is independent of any history order.
type Collection struct {
	Habits []Habit
}

// NewCollection wraps habits, keeping their order.
func NewCollection(habits []Habit) *Collection {
	if habits == nil {
		habits = []Habit{}
	}
	return &Collection{Habits: habits}
}

// Len returns the number of habits.
func (c *Collection) Len() int {
	return len(c.Habits)
}

// Add appends a habit at the end of the order.
func (c *Collection) Add(h Habit) {
	c.Habits = append(c.Habits, h)
}

func (c *Collection) indexOf(id string) int {
	for i := range c.Habits {
		if c.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the habit with the given id.
func (c *Collection) Find(id string) (*Habit, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return &c.Habits[i], true
}

// Resolve looks a habit up by id, then by case-insensitive name, then by
// unique id prefix.
func (c *Collection) Resolve(ref string) (*Habit, error) {
	if h, ok := c.Find(ref); ok {
		return h, nil
	}
	for i := range c.Habits {
		if strings.EqualFold(c.Habits[i].Name, ref) {
			return &c.Habits[i], nil
		}
	}
	match := -1
	for i := range c.Habits {
		if ref != "" && strings.HasPrefix(c.Habits[i].ID, ref) {
			if match >= 0 {
				return nil, ErrNotFound
			}
			match = i
		}
	}
	if match < 0 {
		return nil, ErrNotFound
	}
	return &c.Habits[match], nil
}

// Delete removes the habit with the given id. Unknown ids are a no-op.
func (c *Collection) Delete(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.Habits = append(c.Habits[:i], c.Habits[i+1:]...)
	return true
}

// ToggleVisibility flips showInCalendar. Unknown ids are a no-op.
func (c *Collection) ToggleVisibility(id string) bool {
	h, ok := c.Find(id)
	if !ok {
		return false
	}
	h.ShowInCalendar = !h.ShowInCalendar
	return true
}

// ToggleDate flips the completion of date for a habit. Unknown ids are a no-op.
func (c *Collection) ToggleDate(id, date string) bool {
	h, ok := c.Find(id)
	if !ok {
		return false
	}
	h.ToggleDate(date)
	return true
}

// Move places the habit with the given id at position to, shifting the
// others. to is clamped to the collection bounds.
func (c *Collection) Move(id string, to int) bool {
	from := c.indexOf(id)
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(c.Habits) {
		to = len(c.Habits) - 1
	}
	if from == to {
		return true
	}
	h := c.Habits[from]
	c.Habits = append(c.Habits[:from], c.Habits[from+1:]...)
	c.Habits = append(c.Habits[:to], append([]Habit{h}, c.Habits[to:]...)...)
	return true
}

// Visible returns the habits shown in aggregate views, in stored order.
func (c *Collection) Visible() []Habit {
	return VisibleHabits(c.Habits)
}

// VisibleHabits filters habits to those with showInCalendar set, keeping order.
func VisibleHabits(habits []Habit) []Habit {
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if h.ShowInCalendar {
			out = append(out, h)
		}
	}
	return out
}
