package menu

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk menu configuration.
type File struct {
	Version int          `yaml:"version" json:"version"`
	Menus   []Definition `yaml:"menus" json:"menus"`
}

// Load reads and validates a menu file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read menu file %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes menu YAML. Unknown keys are rejected.
func Parse(data []byte, source string) (File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if errs := f.Validate(); len(errs) > 0 {
		return f, fmt.Errorf("invalid menu file %q: %s", source, strings.Join(errs, "; "))
	}
	return f, nil
}

// Validate reports every structural problem in f. Directions are not checked
// here: an unknown direction falls back to a zero offset at runtime.
func (f File) Validate() []string {
	var errs []string

	if f.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported menu file version %d", f.Version))
	}
	if len(f.Menus) == 0 {
		errs = append(errs, "menus must contain at least one menu")
		return errs
	}

	menuIDs := map[string]struct{}{}
	for _, d := range f.Menus {
		menuIDs[d.ID] = struct{}{}
	}

	seen := map[string]struct{}{}
	for i, d := range f.Menus {
		if strings.TrimSpace(d.ID) == "" {
			errs = append(errs, fmt.Sprintf("menus[%d].id is required", i))
		} else {
			if strings.ContainsAny(d.ID, "/ \t") {
				errs = append(errs, fmt.Sprintf("menus[%d].id %q must not contain slashes or spaces", i, d.ID))
			}
			if _, ok := seen[d.ID]; ok {
				errs = append(errs, fmt.Sprintf("menus[%d].id duplicate %q", i, d.ID))
			}
			seen[d.ID] = struct{}{}
		}
		if strings.TrimSpace(d.Label) == "" {
			errs = append(errs, fmt.Sprintf("menus[%d].label is required", i))
		}
		if d.Bar != "" && !slices.Contains([]Bar{BarTop, BarBottom}, d.Bar) {
			errs = append(errs, fmt.Sprintf("menus[%d].bar must be one of top,bottom", i))
		}
		if d.Size != "" && !slices.Contains([]Size{SizeSmall, SizeMedium, SizeLarge}, d.Size) {
			errs = append(errs, fmt.Sprintf("menus[%d].size must be one of sm,md,lg", i))
		}
		if len(d.Items) == 0 {
			errs = append(errs, fmt.Sprintf("menus[%d].items must contain at least one item", i))
		}

		itemIDs := map[string]struct{}{}
		shortcuts := map[string]struct{}{}
		for j, item := range d.Items {
			if strings.TrimSpace(item.ID) == "" {
				errs = append(errs, fmt.Sprintf("menus[%d].items[%d].id is required", i, j))
			} else {
				if _, ok := itemIDs[item.ID]; ok {
					errs = append(errs, fmt.Sprintf("menus[%d].items[%d].id duplicate %q", i, j, item.ID))
				}
				itemIDs[item.ID] = struct{}{}
			}
			if strings.TrimSpace(item.Label) == "" {
				errs = append(errs, fmt.Sprintf("menus[%d].items[%d].label is required", i, j))
			}
			if item.Shortcut != "" {
				if _, ok := shortcuts[item.Shortcut]; ok {
					errs = append(errs, fmt.Sprintf("menus[%d].items[%d].shortcut duplicate %q", i, j, item.Shortcut))
				}
				shortcuts[item.Shortcut] = struct{}{}
			}
			if item.ActionName() == ActionToggle {
				if item.Target == "" {
					errs = append(errs, fmt.Sprintf("menus[%d].items[%d].target is required for toggle", i, j))
				} else if _, ok := menuIDs[item.Target]; !ok {
					errs = append(errs, fmt.Sprintf("menus[%d].items[%d].target unknown menu %q", i, j, item.Target))
				}
			}
		}
	}
	return errs
}

// DefaultFile is used when no menu file is configured.
func DefaultFile() File {
	noTrap := false
	return File{
		Version: 1,
		Menus: []Definition{
			{
				ID:          "actions",
				Label:       "Actions",
				Description: "Row actions",
				Bar:         BarTop,
				Direction:   "bottom",
				Items: []Item{
					{ID: "rename", Label: "Rename", Shortcut: "ctrl+r", Message: "rename requested"},
					{ID: "duplicate", Label: "Duplicate", Primary: true, Message: "duplicated"},
					{ID: "archive", Label: "Archive", Disabled: true},
					{ID: "help", Label: "Toggle help menu", Action: ActionToggle, Target: "help"},
					{ID: "delete", Label: "Delete", Danger: true, Divider: true, Shortcut: "ctrl+d", Message: "deleted"},
				},
			},
			{
				ID:          "view",
				Label:       "View",
				Description: "View options",
				Bar:         BarTop,
				Direction:   "bottom",
				Flipped:     true,
				Size:        SizeSmall,
				Items: []Item{
					{ID: "compact", Label: "Compact", Message: "compact view"},
					{ID: "comfortable", Label: "Comfortable", Message: "comfortable view"},
					{ID: "nothing", Label: "Do nothing", Action: ActionNoop},
				},
			},
			{
				ID:          "help",
				Label:       "Help",
				Description: "Help and exit",
				Bar:         BarBottom,
				Direction:   "top",
				FocusTrap:   &noTrap,
				Size:        SizeLarge,
				Items: []Item{
					{ID: "about", Label: "About", Message: "overflow-menu demo"},
					{ID: "keys", Label: "Keys", Message: "tab/arrows move, enter opens, esc closes"},
					{ID: "quit", Label: "Quit", Action: ActionQuit, Divider: true, Shortcut: "ctrl+q"},
				},
			},
		},
	}
}
