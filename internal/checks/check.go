package checks

// Check is one named post-edit policy: a trigger condition and the action
// required when the trigger fires. Checks are immutable after construction
// and owned by the configuration that declared them.
type Check struct {
	// Name identifies the check in failure reasons. Unique by convention
	// only; nothing deduplicates names across presets and local checks.
	Name string
	When When
	// Then is nil only for trusted preset checks that declared no action;
	// such checks always pass.
	Then Action
}

// When is the trigger condition of a check.
type When struct {
	// PathsChanged is a glob pattern matched against the changed-file set.
	PathsChanged string
	// PathExists optionally gates the check on a path, relative to the
	// configuration directory, existing at evaluation time. Empty means no
	// gate.
	PathExists string
}

// Action is the required outcome of a triggered check. Exactly two
// implementations exist: CommandsRequired and PathsRequired. Modeling the
// pair as a sum type removes the both-or-neither case from evaluated checks;
// it can only occur in raw documents, where validation rejects it.
type Action interface {
	isAction()
}

// CommandsRequired demands that every listed command pattern appears, as a
// substring of an executed command, after the last matching file write.
type CommandsRequired struct {
	Patterns []string
}

func (CommandsRequired) isAction() {}

// PathsRequired demands that at least one of the listed paths appears in the
// changed-file set.
type PathsRequired struct {
	Paths []string
}

func (PathsRequired) isAction() {}
