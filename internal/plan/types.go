// Package plan defines the implementation-plan document model and loading.
//
// A plan is a structured ten-section proposal of phases and tasks with
// explicit dependencies. Plans arrive as YAML (or JSON, which the YAML
// parser accepts) from the planning front end; this package records which
// top-level sections were actually present so the validator can tell
// "section missing" apart from "section empty".
package plan

// Section names a plan document is required to carry.
const (
	SectionPreparation      = "preparation"
	SectionExecutiveSummary = "executive_summary"
	SectionRiskAssessment   = "risk_assessment"
	SectionCurrentState     = "current_state_analysis"
	SectionKeyFeatures      = "key_features"
	SectionTaskIDSystem     = "task_id_system"
	SectionPhases           = "implementation_phases"
	SectionTestingStrategy  = "testing_strategy"
	SectionSuccessCriteria  = "success_criteria"
	SectionChecklist        = "implementation_checklist"
)

// RequiredSections lists all ten required section names in document order.
func RequiredSections() []string {
	return []string{
		SectionPreparation,
		SectionExecutiveSummary,
		SectionRiskAssessment,
		SectionCurrentState,
		SectionKeyFeatures,
		SectionTaskIDSystem,
		SectionPhases,
		SectionTestingStrategy,
		SectionSuccessCriteria,
		SectionChecklist,
	}
}

// Meta carries plan metadata.
type Meta struct {
	// WorkorderID is the optional audit-trail identifier for the plan
	WorkorderID string `yaml:"workorder_id" json:"workorder_id,omitempty"`
}

// Summary is the executive summary section.
type Summary struct {
	Goal        string `yaml:"goal" json:"goal"`
	Description string `yaml:"description" json:"description"`
	Scope       string `yaml:"scope" json:"scope"`
}

// Risk is one entry in the risk assessment section.
type Risk struct {
	Description string `yaml:"description" json:"description"`
	Mitigation  string `yaml:"mitigation" json:"mitigation"`
}

// Task is one unit of work inside a phase.
type Task struct {
	// ID is the plan-unique task identifier
	ID string `yaml:"id" json:"id"`

	// Description says what the task does
	Description string `yaml:"description" json:"description"`

	// DependsOn lists task ids that must complete first
	DependsOn []string `yaml:"depends_on" json:"depends_on,omitempty"`

	// Elements optionally names scanned elements the task touches;
	// the gate runs impact analysis for these
	Elements []string `yaml:"elements" json:"elements,omitempty"`
}

// Phase groups tasks into an ordered stage of the plan.
type Phase struct {
	Name  string `yaml:"name" json:"name"`
	Tasks []Task `yaml:"tasks" json:"tasks"`
}

// Checklist is the implementation checklist split by execution stage.
type Checklist struct {
	Pre    []string `yaml:"pre_implementation" json:"pre_implementation,omitempty"`
	During []string `yaml:"during_implementation" json:"during_implementation,omitempty"`
	Post   []string `yaml:"post_implementation" json:"post_implementation,omitempty"`
}

// Plan is a parsed implementation plan document.
type Plan struct {
	Meta                    Meta      `yaml:"meta" json:"meta"`
	Preparation             string    `yaml:"preparation" json:"preparation"`
	ExecutiveSummary        Summary   `yaml:"executive_summary" json:"executive_summary"`
	RiskAssessment          []Risk    `yaml:"risk_assessment" json:"risk_assessment"`
	CurrentStateAnalysis    string    `yaml:"current_state_analysis" json:"current_state_analysis"`
	KeyFeatures             []string  `yaml:"key_features" json:"key_features"`
	TaskIDSystem            string    `yaml:"task_id_system" json:"task_id_system"`
	ImplementationPhases    []Phase   `yaml:"implementation_phases" json:"implementation_phases"`
	TestingStrategy         string    `yaml:"testing_strategy" json:"testing_strategy"`
	SuccessCriteria         []string  `yaml:"success_criteria" json:"success_criteria"`
	ImplementationChecklist Checklist `yaml:"implementation_checklist" json:"implementation_checklist"`

	// ContentHash is the blake2b-256 hex digest of the source document,
	// recorded for provenance. Empty for plans built in memory.
	ContentHash string `yaml:"-" json:"contentHash,omitempty"`

	// present records which top-level keys the source document carried.
	present map[string]bool
}

// HasSection reports whether the named top-level section was present in
// the source document. Plans constructed in memory (tests, callers that
// fill the struct directly) report every section as present.
func (p *Plan) HasSection(name string) bool {
	if p.present == nil {
		return true
	}
	return p.present[name]
}

// MarkPresent records section presence. The loader calls this; tests may
// use it to simulate missing sections.
func (p *Plan) MarkPresent(names ...string) {
	if p.present == nil {
		p.present = make(map[string]bool, len(names))
	}
	for _, name := range names {
		p.present[name] = true
	}
}

// Tasks returns all tasks across all phases in document order.
func (p *Plan) Tasks() []Task {
	var tasks []Task
	for _, phase := range p.ImplementationPhases {
		tasks = append(tasks, phase.Tasks...)
	}
	return tasks
}
