package config

// FormatRuleID renders a rule identifier in the requested style. Parser
// diagnostics and rules without a name always render as their ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	}
	return ruleName
}
