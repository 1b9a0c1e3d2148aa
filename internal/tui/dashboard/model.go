package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	"github.com/alexisbeaulieu97/stockroom/internal/charts"
	"github.com/alexisbeaulieu97/stockroom/internal/logger"
	"github.com/alexisbeaulieu97/stockroom/internal/preferences"
	"github.com/alexisbeaulieu97/stockroom/internal/store"
	"github.com/alexisbeaulieu97/stockroom/internal/theme"
)

const defaultChartWidth = 72

var kpiCaptions = [4]string{"Total Products", "Low Stock Items", "Total Value", "Categories"}

var kpiRoles = [4]theme.Role{theme.RoleKPIBlue, theme.RoleKPIAmber, theme.RoleKPIGreen, theme.RoleKPIRed}

// Deps are the collaborators the dashboard drives.
type Deps struct {
	Catalog   catalog.Store
	Analytics Analytics
	Exporter  Exporter
	Theme     *theme.Engine
	// Tabs remembers the last active chart tab.
	Tabs     preferences.Repository
	Board    *charts.Board
	Settings charts.Settings
	PageSize int
	Logger   *logger.Logger
}

// widgets is the themed control tree plus the content drawn from data. Theme
// listeners redraw into it, so it is shared by every copy of the Model.
type widgets struct {
	root      *theme.Frame
	title     *theme.Label
	themeName *theme.Label
	kpiCards  [4]*theme.Frame
	kpiValues [4]*theme.Label
	tabs      *theme.TabContainer
	chartView map[string]*theme.Label
	datasets  map[string][]charts.Dataset
	search    *theme.Entry
	pageSize  *theme.ComboBox
	sort      *theme.ComboBox
	filterBtn *theme.Button
	resetBtn  *theme.Button
	exportBtn *theme.Button
	themeBtn  *theme.Button

	table      string
	chartWidth int
}

// Model is the main dashboard model
type Model struct {
	ctx       context.Context
	view      *catalog.View
	analytics Analytics
	exporter  Exporter
	engine    *theme.Engine
	tabPrefs  preferences.Repository
	board     *charts.Board
	settings  charts.Settings
	log       *logger.Logger

	ui   *widgets
	form *filterForm

	keys     keyMap
	formKeys formKeys
	help     help.Model

	viewMode ViewMode
	kpis     store.KPIs

	showError bool
	errorMsg  string
	errorSeq  int
	status    string
	statusSeq int

	width  int
	height int
}

// NewModel builds the control tree, restores the last chart tab and subscribes
// the charts and the catalog table to theme changes. Data is loaded by Init.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Board == nil {
		deps.Board = charts.NewBoard(deps.Logger)
	}
	if deps.Settings == (charts.Settings{}) {
		deps.Settings = charts.DefaultSettings()
	}

	m := Model{
		ctx:       ctx,
		view:      catalog.NewView(deps.Catalog, deps.PageSize),
		analytics: deps.Analytics,
		exporter:  deps.Exporter,
		engine:    deps.Theme,
		tabPrefs:  deps.Tabs,
		board:     deps.Board,
		settings:  deps.Settings,
		log:       deps.Logger,
		keys:      defaultKeyMap(),
		formKeys:  defaultFormKeys(),
		help:      help.New(),
		viewMode:  ViewCatalog,
	}
	m.ui = m.buildWidgets()
	m.restoreTab()

	board := m.board
	ui := m.ui
	view := m.view
	m.engine.OnChange(func(_ context.Context, t theme.Theme) error {
		ui.themeName.Text = themeCaption(t.ID)
		ui.drawCharts(board, t)
		return nil
	})
	m.engine.OnChange(func(ctx context.Context, t theme.Theme) error {
		if err := view.Refresh(ctx); err != nil {
			return err
		}
		ui.renderTable(view.Snapshot(), t.Palette)
		return nil
	})
	return m
}

func (m Model) buildWidgets() *widgets {
	ui := &widgets{
		title:      theme.NewLabel("Stockroom"),
		themeName:  theme.NewLabel(themeCaption(m.engine.Theme().ID)),
		tabs:       theme.NewTabContainer(charts.Tabs...),
		chartView:  map[string]*theme.Label{},
		datasets:   map[string][]charts.Dataset{},
		filterBtn:  theme.NewButton("Filters", theme.ButtonPrimary),
		resetBtn:   theme.NewButton("Clear", theme.ButtonWarning),
		exportBtn:  theme.NewButton("Export CSV", theme.ButtonSuccess),
		themeBtn:   theme.NewButton("Theme", theme.ButtonPrimary),
		chartWidth: defaultChartWidth,
	}
	ui.title.Bold = true
	header := theme.NewFrame(ui.title, ui.themeName)
	header.Transparent = true

	kpiRow := theme.NewFrame()
	kpiRow.Transparent = true
	for i := range kpiCaptions {
		ui.kpiValues[i] = theme.NewAccentLabel("-", kpiRoles[i])
		ui.kpiValues[i].Bold = true
		ui.kpiCards[i] = theme.NewFrame(theme.NewLabel(kpiCaptions[i]), ui.kpiValues[i])
		ui.kpiCards[i].Border = true
		kpiRow.Add(ui.kpiCards[i])
	}

	for _, tab := range ui.tabs.Tabs() {
		label := theme.NewLabel("")
		ui.chartView[tab.Name] = label
		tab.Content.Add(label)
	}

	ui.search, _ = m.engine.NewEntry("Search products...")
	sizes := make([]string, len(catalog.PageSizes))
	for i, n := range catalog.PageSizes {
		sizes[i] = strconv.Itoa(n)
	}
	ui.pageSize, _ = m.engine.NewComboBox(sizes)
	ui.pageSize.SetValue(strconv.Itoa(m.view.State().PageSize()))
	columns := make([]string, 0, len(catalog.SortColumns()))
	for _, c := range catalog.SortColumns() {
		columns = append(columns, c.String())
	}
	ui.sort, _ = m.engine.NewComboBox(columns)

	toolbar := theme.NewFrame(ui.filterBtn, ui.resetBtn, ui.exportBtn, ui.themeBtn)
	toolbar.Transparent = true

	ui.root = theme.NewFrame(header, kpiRow, ui.tabs, toolbar)
	m.engine.SetRoot(ui.root)
	return ui
}

// restoreTab selects the persisted tab. Unknown or missing names mean Overview.
func (m Model) restoreTab() {
	if m.tabPrefs == nil {
		return
	}
	name, ok := m.tabPrefs.Load(preferences.KeyTab)
	if !ok || !charts.IsTab(name) {
		m.ui.tabs.Select(charts.TabOverview)
		return
	}
	m.ui.tabs.Select(name)
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return startCmd()
}

// reload refreshes the catalog page, the KPI cards and the active chart tab.
func (m *Model) reload() error {
	if err := m.view.Refresh(m.ctx); err != nil {
		return err
	}
	m.renderTable()

	kpis, err := m.analytics.KPIs(m.ctx, m.settings.LowStockThreshold)
	if err != nil {
		return fmt.Errorf("load kpis: %w", err)
	}
	m.setKPIs(kpis)

	clear(m.ui.datasets)
	return m.loadCharts()
}

func (m *Model) setKPIs(k store.KPIs) {
	m.kpis = k
	values := [4]string{
		formatCount(k.TotalProducts),
		formatCount(k.LowStock),
		formatMoney(k.TotalValue.InexactFloat64()),
		formatCount(k.Categories),
	}
	for i, v := range values {
		m.ui.kpiValues[i].Text = v
	}
}

// loadCharts fetches the active tab's datasets unless cached, then draws them.
func (m *Model) loadCharts() error {
	tab := m.ui.tabs.Active()
	if _, ok := m.ui.datasets[tab]; !ok {
		ds, err := charts.ForTab(m.ctx, m.analytics, tab, m.settings)
		if err != nil {
			return fmt.Errorf("load %s charts: %w", tab, err)
		}
		m.ui.datasets[tab] = ds
	}
	m.ui.drawCharts(m.board, m.engine.Theme())
	return nil
}

func (m *Model) renderTable() {
	m.ui.renderTable(m.view.Snapshot(), m.engine.Theme().Palette)
}

// drawCharts renders the cached datasets of the active tab with t.
func (ui *widgets) drawCharts(board *charts.Board, t theme.Theme) {
	tab := ui.tabs.Active()
	label, ok := ui.chartView[tab]
	if !ok {
		return
	}
	label.Text = board.RenderAll(ui.datasets[tab], t, ui.chartWidth)
}

// switchTab moves the tab selection, persists it and loads its charts.
func (m *Model) switchTab(delta int) error {
	m.ui.tabs.Cycle(delta)
	active := m.ui.tabs.Active()
	if m.tabPrefs != nil {
		if err := m.tabPrefs.Save(preferences.KeyTab, active); err != nil {
			m.log.Error(err, "tab state not saved", "tab", active)
		}
	}
	return m.loadCharts()
}

// fail shows err in the banner and schedules its removal.
func (m *Model) fail(err error) tea.Cmd {
	m.errorSeq++
	m.showError = true
	m.errorMsg = err.Error()
	m.log.Error(err, "dashboard action failed")
	return clearErrorCmd(m.errorSeq)
}

// notify sets the status line and schedules its removal.
func (m *Model) notify(msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	return clearStatusCmd(m.statusSeq)
}

// Page returns what the catalog currently shows.
func (m Model) Page() catalog.Page { return m.view.Snapshot() }

// ActiveTab returns the selected chart tab.
func (m Model) ActiveTab() string { return m.ui.tabs.Active() }

// GetViewMode returns the current view mode
func (m Model) GetViewMode() ViewMode { return m.viewMode }

func themeCaption(id theme.ID) string {
	if id == theme.Dark {
		return "Dark mode"
	}
	return "Light mode"
}
