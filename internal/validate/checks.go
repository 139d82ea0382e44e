package validate

import (
	"fmt"
	"regexp"
	"strings"

	"planguard/internal/plan"
)

// textField is a named piece of free text scanned for placeholders.
type textField struct {
	section string
	text    string
}

// collectText gathers every free-text field from the sections the document
// actually carries.
func collectText(p *plan.Plan) []textField {
	fields := make([]textField, 0, 16)
	add := func(section, text string) {
		if strings.TrimSpace(text) != "" {
			fields = append(fields, textField{section: section, text: text})
		}
	}

	if p.HasSection(plan.SectionPreparation) {
		add(plan.SectionPreparation, p.Preparation)
	}
	if p.HasSection(plan.SectionExecutiveSummary) {
		add(plan.SectionExecutiveSummary, p.ExecutiveSummary.Goal)
		add(plan.SectionExecutiveSummary, p.ExecutiveSummary.Description)
		add(plan.SectionExecutiveSummary, p.ExecutiveSummary.Scope)
	}
	if p.HasSection(plan.SectionRiskAssessment) {
		for _, r := range p.RiskAssessment {
			add(plan.SectionRiskAssessment, r.Description)
			add(plan.SectionRiskAssessment, r.Mitigation)
		}
	}
	if p.HasSection(plan.SectionCurrentState) {
		add(plan.SectionCurrentState, p.CurrentStateAnalysis)
	}
	if p.HasSection(plan.SectionKeyFeatures) {
		for _, f := range p.KeyFeatures {
			add(plan.SectionKeyFeatures, f)
		}
	}
	if p.HasSection(plan.SectionTaskIDSystem) {
		add(plan.SectionTaskIDSystem, p.TaskIDSystem)
	}
	if p.HasSection(plan.SectionPhases) {
		for _, task := range p.Tasks() {
			add("task "+task.ID, task.Description)
		}
	}
	if p.HasSection(plan.SectionTestingStrategy) {
		add(plan.SectionTestingStrategy, p.TestingStrategy)
	}
	if p.HasSection(plan.SectionSuccessCriteria) {
		for _, c := range p.SuccessCriteria {
			add(plan.SectionSuccessCriteria, c)
		}
	}
	if p.HasSection(plan.SectionChecklist) {
		for _, item := range p.ImplementationChecklist.Pre {
			add(plan.SectionChecklist, item)
		}
		for _, item := range p.ImplementationChecklist.During {
			add(plan.SectionChecklist, item)
		}
		for _, item := range p.ImplementationChecklist.Post {
			add(plan.SectionChecklist, item)
		}
	}
	return fields
}

// checkCompleteness finds placeholder text, duplicate task ids, dangling
// dependency references, and dependency cycles.
func checkCompleteness(p *plan.Plan, schema *Schema) checkOutcome {
	out := checkOutcome{}

	// (a) placeholder text, case-insensitive, one hit per field+marker
	fields := collectText(p)
	for _, field := range fields {
		out.total++
		lower := strings.ToLower(field.text)
		hit := false
		for _, marker := range schema.Placeholders {
			if !strings.Contains(lower, strings.ToLower(marker)) {
				continue
			}
			hit = true
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMajor,
				Section:    field.section,
				Message:    fmt.Sprintf("placeholder text '%s' in %s", marker, field.section),
				Suggestion: "Replace the placeholder with real content before review",
			})
		}
		if hit {
			out.failed++
		}
	}

	if !p.HasSection(plan.SectionPhases) {
		return out
	}
	tasks := p.Tasks()

	// (b) task ids unique
	seen := make(map[string]int, len(tasks))
	for _, task := range tasks {
		seen[task.ID]++
	}
	for _, task := range tasks {
		out.total++
		if seen[task.ID] > 1 {
			out.failed++
			// Report the duplicate once, on its first occurrence.
			seen[task.ID] = -seen[task.ID]
			out.issues = append(out.issues, Issue{
				Severity:   SeverityCritical,
				Section:    "task " + task.ID,
				Message:    fmt.Sprintf("task id '%s' is not unique", task.ID),
				Suggestion: "Assign a distinct id to every task",
			})
		}
	}

	// (c) every depends_on resolves
	known := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		known[task.ID] = true
	}
	for _, task := range tasks {
		for _, dep := range task.DependsOn {
			out.total++
			if known[dep] {
				continue
			}
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityCritical,
				Section:    "task " + task.ID,
				Message:    fmt.Sprintf("depends_on references unknown task '%s'", dep),
				Suggestion: "Point the dependency at an existing task id",
			})
		}
	}

	// (d) the depends_on relation is acyclic. A cycle is a finding to
	// report, never an exception.
	out.total++
	cycles := findTaskCycles(tasks)
	for _, cycle := range cycles {
		out.failed++
		out.issues = append(out.issues, Issue{
			Severity:   SeverityCritical,
			Section:    plan.SectionPhases,
			Message:    "circular dependency: " + strings.Join(cycle, " -> "),
			Suggestion: "Remove one dependency to break the cycle",
		})
	}

	return out
}

// checkQuality inspects section content depth.
func checkQuality(p *plan.Plan, schema *Schema) checkOutcome {
	out := checkOutcome{}

	if p.HasSection(plan.SectionExecutiveSummary) {
		summary := map[string]string{
			"goal":        p.ExecutiveSummary.Goal,
			"description": p.ExecutiveSummary.Description,
			"scope":       p.ExecutiveSummary.Scope,
		}
		for _, key := range []string{"goal", "description", "scope"} {
			out.total++
			if strings.TrimSpace(summary[key]) != "" {
				continue
			}
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMajor,
				Section:    plan.SectionExecutiveSummary,
				Message:    fmt.Sprintf("executive summary has no %s", key),
				Suggestion: fmt.Sprintf("State the %s explicitly", key),
			})
		}
	}

	if p.HasSection(plan.SectionRiskAssessment) {
		out.total++
		if !hasRiskContent(p.RiskAssessment) {
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMajor,
				Section:    plan.SectionRiskAssessment,
				Message:    "risk assessment is empty",
				Suggestion: "List at least one concrete risk and its mitigation",
			})
		}
	}

	if p.HasSection(plan.SectionPhases) {
		for _, task := range p.Tasks() {
			out.total++
			if len(strings.TrimSpace(task.Description)) >= schema.MinTaskDescriptionLen {
				continue
			}
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMinor,
				Section:    "task " + task.ID,
				Message:    fmt.Sprintf("task description is under %d characters", schema.MinTaskDescriptionLen),
				Suggestion: "Describe what the task changes and where",
			})
		}
	}

	if p.HasSection(plan.SectionSuccessCriteria) {
		for _, criterion := range p.SuccessCriteria {
			out.total++
			if term, vague := vagueTerm(criterion, schema); vague {
				out.failed++
				out.issues = append(out.issues, Issue{
					Severity:   SeverityMinor,
					Section:    plan.SectionSuccessCriteria,
					Message:    fmt.Sprintf("success criterion is vague ('%s')", term),
					Suggestion: "Make the criterion objectively checkable",
				})
			}
		}
	}

	if p.HasSection(plan.SectionTestingStrategy) {
		lower := strings.ToLower(p.TestingStrategy)
		for _, tier := range schema.TestingTiers {
			out.total++
			if mentionsTier(lower, tier) {
				continue
			}
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMinor,
				Section:    plan.SectionTestingStrategy,
				Message:    fmt.Sprintf("testing strategy does not mention %s tests", tier),
				Suggestion: fmt.Sprintf("Say how %s coverage is handled", tier),
			})
		}
	}

	return out
}

// checkAutonomy verifies the plan reads as executable without a human in
// the loop: concrete tasks, explicit ordering, sane phase progression,
// full checklist coverage.
func checkAutonomy(p *plan.Plan, schema *Schema) checkOutcome {
	out := checkOutcome{}

	if p.HasSection(plan.SectionPhases) {
		for _, task := range p.Tasks() {
			out.total++
			if verb, generic := genericVerb(task.Description, schema); generic {
				out.failed++
				out.issues = append(out.issues, Issue{
					Severity:   SeverityMinor,
					Section:    "task " + task.ID,
					Message:    fmt.Sprintf("task reads as a generic action ('%s')", verb),
					Suggestion: "Name the concrete artifact the task produces",
				})
			}

			out.total++
			if hint, implied := orderingHint(task.Description, schema); implied && len(task.DependsOn) == 0 {
				out.failed++
				out.issues = append(out.issues, Issue{
					Severity:   SeverityMajor,
					Section:    "task " + task.ID,
					Message:    fmt.Sprintf("description implies ordering ('%s') but depends_on is empty", hint),
					Suggestion: "Declare the ordering with explicit depends_on ids",
				})
			}
		}

		// Phases should progress setup -> implementation -> testing -> deployment.
		lastStage := -1
		lastName := ""
		for _, phase := range p.ImplementationPhases {
			stage := phaseStage(phase.Name)
			if stage < 0 {
				continue
			}
			out.total++
			if lastStage > stage {
				out.failed++
				out.issues = append(out.issues, Issue{
					Severity:   SeverityMajor,
					Section:    plan.SectionPhases,
					Message:    fmt.Sprintf("phase '%s' comes after '%s', out of order", phase.Name, lastName),
					Suggestion: "Order phases setup, implementation, testing, deployment",
				})
			}
			lastStage = stage
			lastName = phase.Name
		}
	}

	if p.HasSection(plan.SectionChecklist) {
		stages := []struct {
			name  string
			items []string
		}{
			{"pre-implementation", p.ImplementationChecklist.Pre},
			{"during-implementation", p.ImplementationChecklist.During},
			{"post-implementation", p.ImplementationChecklist.Post},
		}
		for _, stage := range stages {
			out.total++
			if len(stage.items) > 0 {
				continue
			}
			out.failed++
			out.issues = append(out.issues, Issue{
				Severity:   SeverityMinor,
				Section:    plan.SectionChecklist,
				Message:    fmt.Sprintf("checklist has no %s items", stage.name),
				Suggestion: fmt.Sprintf("Add %s checks to the checklist", stage.name),
			})
		}
	}

	return out
}

// checkWorkorder validates the optional workorder id format. Violations
// are minor and never block approval on their own.
func checkWorkorder(p *plan.Plan, schema *Schema) checkOutcome {
	out := checkOutcome{}
	id := strings.TrimSpace(p.Meta.WorkorderID)
	if id == "" {
		return out
	}

	out.total++
	re, err := regexp.Compile(schema.WorkorderPattern)
	if err != nil || re.MatchString(id) {
		return out
	}
	out.failed++
	out.issues = append(out.issues, Issue{
		Severity:   SeverityMinor,
		Section:    "meta",
		Message:    fmt.Sprintf("workorder id '%s' does not match %s", id, schema.WorkorderPattern),
		Suggestion: "Use the WO-<AREA>-<NNN> format",
	})
	return out
}

// hasRiskContent reports whether any risk entry carries a description.
func hasRiskContent(risks []plan.Risk) bool {
	for _, r := range risks {
		if strings.TrimSpace(r.Description) != "" {
			return true
		}
	}
	return false
}

// vagueTerm reports the first vague term found in a criterion.
func vagueTerm(criterion string, schema *Schema) (string, bool) {
	trimmed := strings.TrimSpace(criterion)
	if len(trimmed) < 10 {
		return "too short", true
	}
	lower := strings.ToLower(trimmed)
	for _, term := range schema.VagueTerms {
		if containsWord(lower, term) {
			return term, true
		}
	}
	return "", false
}

// genericVerb reports whether a task description opens with a generic verb.
func genericVerb(description string, schema *Schema) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(description))
	for _, verb := range schema.GenericVerbs {
		if lower == verb || strings.HasPrefix(lower, verb+" ") {
			return verb, true
		}
	}
	return "", false
}

// orderingHint reports the first sequencing word in a task description.
func orderingHint(description string, schema *Schema) (string, bool) {
	lower := strings.ToLower(description)
	for _, hint := range schema.OrderingHints {
		if containsWord(lower, hint) {
			return hint, true
		}
	}
	return "", false
}

// mentionsTier matches a testing tier name, accepting the spelled-out
// form of e2e.
func mentionsTier(lowerText, tier string) bool {
	if strings.Contains(lowerText, strings.ToLower(tier)) {
		return true
	}
	if tier == "e2e" {
		return strings.Contains(lowerText, "end-to-end") || strings.Contains(lowerText, "end to end")
	}
	return false
}

// phaseStage classifies a phase name into the canonical stage order.
// Returns -1 for names that match no stage.
func phaseStage(name string) int {
	lower := strings.ToLower(name)
	stages := []struct {
		index    int
		keywords []string
	}{
		{0, []string{"setup", "set up", "prep", "scaffold", "foundation"}},
		{1, []string{"implement", "build", "develop", "migrat", "core"}},
		{2, []string{"test", "verif", "valid", "qa"}},
		{3, []string{"deploy", "release", "rollout", "launch", "ship"}},
	}
	for _, stage := range stages {
		for _, kw := range stage.keywords {
			if strings.Contains(lower, kw) {
				return stage.index
			}
		}
	}
	return -1
}

// containsWord does a whole-word, case-insensitive match. The haystack
// must already be lowercased.
func containsWord(lowerText, word string) bool {
	word = strings.ToLower(word)
	idx := 0
	for {
		i := strings.Index(lowerText[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(lowerText[start-1])
		afterOK := end == len(lowerText) || !isWordChar(lowerText[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
