package features

// Catalog keys. Keys are persisted; never rename one.
const (
	PromiseAppsInAllApps                             = "PROMISE_APPS_IN_ALL_APPS"
	PromiseAppsNewInstalls                           = "PROMISE_APPS_NEW_INSTALLS"
	ApplyConfigAtRuntime                             = "APPLY_CONFIG_AT_RUNTIME"
	QuickstepSprings                                 = "QUICKSTEP_SPRINGS"
	UnstableSprings                                  = "UNSTABLE_SPRINGS"
	KeyguardAnimation                                = "KEYGUARD_ANIMATION"
	AdaptiveIconWindowAnim                           = "ADAPTIVE_ICON_WINDOW_ANIM"
	EnableQuickstepLiveTile                          = "ENABLE_QUICKSTEP_LIVE_TILE"
	EnableSuggestedActionsOverview                   = "ENABLE_SUGGESTED_ACTIONS_OVERVIEW"
	FolderNameSuggest                                = "FOLDER_NAME_SUGGEST"
	FolderNameMajorityRanking                        = "FOLDER_NAME_MAJORITY_RANKING"
	AppSearchImprovements                            = "APP_SEARCH_IMPROVEMENTS"
	EnablePredictionDismiss                          = "ENABLE_PREDICTION_DISMISS"
	EnableQuickCaptureGesture                        = "ENABLE_QUICK_CAPTURE_GESTURE"
	EnableQuickCaptureWindow                         = "ENABLE_QUICK_CAPTURE_WINDOW"
	ForceLocalOverscrollPlugin                       = "FORCE_LOCAL_OVERSCROLL_PLUGIN"
	AssistantGivesLauncherFocus                      = "ASSISTANT_GIVES_LAUNCHER_FOCUS"
	EnableHybridHotseat                              = "ENABLE_HYBRID_HOTSEAT"
	HotseatMigrateToFolder                           = "HOTSEAT_MIGRATE_TO_FOLDER"
	EnableDeepShortcutIconCache                      = "ENABLE_DEEP_SHORTCUT_ICON_CACHE"
	MultiDBGridMigrationAlgo                         = "MULTI_DB_GRID_MIRATION_ALGO"
	EnableLauncherPreviewInGridPicker                = "ENABLE_LAUNCHER_PREVIEW_IN_GRID_PICKER"
	EnableOverviewActions                            = "ENABLE_OVERVIEW_ACTIONS"
	EnableOverviewSelections                         = "ENABLE_OVERVIEW_SELECTIONS"
	EnableOverviewShare                              = "ENABLE_OVERVIEW_SHARE"
	EnableDatabaseRestore                            = "ENABLE_DATABASE_RESTORE"
	EnableUniversalSmartspace                        = "ENABLE_UNIVERSAL_SMARTSPACE"
	EnableLSQVelocityProvider                        = "ENABLE_LSQ_VELOCITY_PROVIDER"
	AlwaysUseHardwareOptimizationForFolderAnimations = "ALWAYS_USE_HARDWARE_OPTIMIZATION_FOR_FOLDER_ANIMATIONS"
	EnableAllAppsEdu                                 = "ENABLE_ALL_APPS_EDU"
	SeparateRecentsActivity                          = "SEPARATE_RECENTS_ACTIVITY"
	UserEventDispatcher                              = "USER_EVENT_DISPATCHER"
	EnableMinimalDevice                              = "ENABLE_MINIMAL_DEVICE"
)

// catalog is the built-in flag table, in declaration order.
var catalog = []Descriptor{
	{
		Key:         PromiseAppsInAllApps,
		Default:     false,
		Description: "Add promise icon in all-apps",
	},
	{
		Key:         PromiseAppsNewInstalls,
		Default:     true,
		Description: "Adds a promise icon to the home screen for new install sessions.",
	},
	{
		Key:         ApplyConfigAtRuntime,
		Default:     true,
		Description: "Apply display changes dynamically",
	},
	{
		Key:         QuickstepSprings,
		Default:     true,
		Description: "Enable springs for quickstep animations",
	},
	{
		Key:         UnstableSprings,
		Default:     false,
		Description: "Enable unstable springs for quickstep animations",
	},
	{
		Key:         KeyguardAnimation,
		Default:     false,
		Description: "Enable animation for keyguard going away on wallpaper",
	},
	{
		Key:         AdaptiveIconWindowAnim,
		Default:     true,
		Description: "Use adaptive icons for window animations.",
	},
	{
		Key:         EnableQuickstepLiveTile,
		Default:     false,
		Description: "Enable live tile in Quickstep overview",
	},
	{
		Key:           EnableSuggestedActionsOverview,
		Default:       true,
		Description:   "Show chip hints on the overview screen",
		RemoteManaged: true,
	},
	{
		Key:           FolderNameSuggest,
		Default:       true,
		Description:   "Suggests folder names instead of blank text.",
		RemoteManaged: true,
	},
	{
		Key:         FolderNameMajorityRanking,
		Default:     true,
		Description: "Suggests folder names based on majority based ranking.",
	},
	{
		Key:           AppSearchImprovements,
		Default:       true,
		Description:   "Adds localized title and keyword search and ranking",
		RemoteManaged: true,
	},
	{
		Key:         EnablePredictionDismiss,
		Default:     true,
		Description: "Allow option to dismiss apps from predicted list",
	},
	{
		Key:         EnableQuickCaptureGesture,
		Default:     true,
		Description: "Swipe from right to left to quick capture",
	},
	{
		Key:         EnableQuickCaptureWindow,
		Default:     false,
		Description: "Use window to host quick capture",
	},
	{
		Key:         ForceLocalOverscrollPlugin,
		Default:     false,
		Description: "Use a launcher-provided OverscrollPlugin if available",
	},
	{
		Key:         AssistantGivesLauncherFocus,
		Default:     false,
		Description: "Allow Launcher to handle nav bar gestures while Assistant is running over it",
	},
	{
		Key:         EnableHybridHotseat,
		Default:     true,
		Description: "Fill gaps in hotseat with predicted apps",
	},
	{
		Key:         HotseatMigrateToFolder,
		Default:     false,
		Description: "Should move hotseat items into a folder",
	},
	{
		Key:         EnableDeepShortcutIconCache,
		Default:     true,
		Description: "R/W deep shortcut in IconCache",
	},
	{
		Key:         MultiDBGridMigrationAlgo,
		Default:     true,
		Description: "Use the multi-db grid migration algorithm",
	},
	{
		Key:         EnableLauncherPreviewInGridPicker,
		Default:     true,
		Description: "Show launcher preview in grid picker",
	},
	{
		Key:         EnableOverviewActions,
		Default:     true,
		Description: "Show app actions instead of the shelf in Overview. As part of this decoupling, also distinguish swipe up from nav bar vs above it.",
	},
	{
		Key:           EnableOverviewSelections,
		Default:       true,
		Description:   "Show Select Mode button in Overview Actions",
		RemoteManaged: true,
	},
	{
		Key:         EnableOverviewShare,
		Default:     false,
		Description: "Show Share button in Overview Actions",
	},
	{
		Key:         EnableDatabaseRestore,
		Default:     true,
		Description: "Enable database restore when new restore session is created",
	},
	{
		Key:         EnableUniversalSmartspace,
		Default:     false,
		Description: "Replace Smartspace with a version rendered by System UI.",
	},
	{
		Key:         EnableLSQVelocityProvider,
		Default:     true,
		Description: "Use Least Square algorithm for motion pause detection.",
	},
	{
		Key:         AlwaysUseHardwareOptimizationForFolderAnimations,
		Default:     false,
		Description: "Always use hardware optimization for folder animations.",
	},
	{
		Key:         EnableAllAppsEdu,
		Default:     true,
		Description: "Shows user a tutorial on how to get to All Apps after X amount of attempts.",
	},
	{
		Key:         SeparateRecentsActivity,
		Default:     false,
		Description: "Uses a separate recents activity instead of using the integrated recents+Launcher UI",
	},
	{
		Key:           UserEventDispatcher,
		Default:       true,
		Description:   "User event dispatcher collects logs.",
		RemoteManaged: true,
	},
	{
		Key:           EnableMinimalDevice,
		Default:       false,
		Description:   "Allow user to toggle minimal device mode in launcher.",
		RemoteManaged: true,
	},
}

// Catalog returns a copy of the built-in flag table.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
