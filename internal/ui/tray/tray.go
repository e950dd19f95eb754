package tray

import (
	"fmt"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are the tray images for the idle and running states.
type Icons struct {
	Idle    fyne.Resource
	Running fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggle     func()
	OnSelectMode func(model.Mode)
	OnSettings   func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	mode       model.Mode
	running    bool
	display    string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem),
		mode:      model.ModePomodoro,
	}

	manager.statusItem = fyne.NewMenuItem("Pomodoro", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	for _, mode := range model.Modes() {
		mode := mode
		manager.modeItems[mode] = fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnSelectMode != nil {
				manager.callbacks.OnSelectMode(mode)
			}
		})
	}

	manager.refreshStatus()
	manager.refreshIcon()
	return manager
}

// SetStatus updates mode and remaining time shown in the menu.
func (manager *Manager) SetStatus(mode model.Mode, display string) {
	manager.mode = mode
	manager.display = display
	manager.refreshStatus()
}

// SetRunning updates the toggle label and tray icon.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.refreshIcon()
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	status := manager.mode.Label()
	if manager.display != "" {
		status = fmt.Sprintf("%s %s", status, manager.display)
	}
	manager.statusItem.Label = status

	if manager.running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	for mode, item := range manager.modeItems {
		item.Checked = mode == manager.mode
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.host == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.running && manager.icons.Running != nil {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) menu() *fyne.Menu {
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show Timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
	}
	for _, mode := range model.Modes() {
		items = append(items, manager.modeItems[mode])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() {
			if manager.callbacks.OnSettings != nil {
				manager.callbacks.OnSettings()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	return fyne.NewMenu("Pomodoro", items...)
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu())
	}
}
