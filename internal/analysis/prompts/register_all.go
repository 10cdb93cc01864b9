package prompts

const ideaBlock = `
STARTUP IDEA:
- Title: {{.Title}}
- Description: {{.Description}}
- Problem Statement: {{.ProblemStatement}}
- Target Audience: {{.TargetAudience}}
- Unique Value Proposition: {{.UniqueValueProposition}}
- Category: {{.Category}}
- Stage: {{.Stage}}
- Team Size: {{.TeamSize}}
- Funding Needed: {{.FundingNeeded}}
- Domain: {{.Domain}}
- Subdomain: {{.Subdomain}}
`

const dateFooter = `
Return ONLY the JSON object.
You must assume the current date is {{.CurrentDate}}.
If exact figures are uncertain, provide conservative estimates and explicitly signal assumptions.`

func RegisterAll() {
	RegisterSpec(Spec{
		Name:    PromptBasicAnalysis,
		Version: 1,
		System: `
You are an expert healthcare startup analyst focused on the Pakistani and South Asian medical technology market.
You know:
- DRAP (Drug Regulatory Authority of Pakistan) regulations
- Pakistani healthcare infrastructure and market dynamics
- cultural factors that shape healthcare adoption in Pakistan
- the regional funding landscape for healthcare startups
- the technical feasibility of medical solutions

Keep the analysis realistic, data-driven and culturally informed.
Respond ONLY with valid JSON. No markdown, no code fences, no commentary.`,
		User: `
Analyze the healthcare startup idea below for the Pakistani market and return a realistic, complete analysis.

Return ONLY a valid JSON object. No markdown, no explanations, no extra text.
` + ideaBlock + `
RETURN JSON WITH EXACTLY THIS STRUCTURE:

{
  "scores": {
    "feasibility": <number 0-100>,
    "compliance_score": <number 0-100>,
    "market_demand": <number 0-100>,
    "cultural_acceptance": <number 0-100>,
    "cost_viability": <number 0-100>,
    "readiness_score": <number 0-100, average of the five above>
  },
  "compliance_checks": [
    {"rule_name": "DRAP Regulatory Approval", "rule_description": "<assessment for this idea>", "passed": <true|false>, "recommendations": "<concrete action items>"},
    {"rule_name": "Data Privacy & Security (PECA 2016)", "rule_description": "<data handling and privacy assessment>", "passed": <true|false>, "recommendations": "<compliance requirements>"},
    {"rule_name": "Medical Practice Licensing", "rule_description": "<practitioner or facility licensing needs>", "passed": <true|false>, "recommendations": "<licensing steps or N/A>"},
    {"rule_name": "Clinical Trial Requirements", "rule_description": "<clinical validation needs if applicable>", "passed": <true|false>, "recommendations": "<trial requirements or N/A>"}
  ],
  "ai_insights": {
    "market_size": "<Pakistan-specific estimate with numbers>",
    "growth_rate": "<projected CAGR with timeframe and reasoning>",
    "target_potential": "<target segment analysis>",
    "key_risks": ["<risk>", "<risk>", "<risk>"],
    "competitive_advantages": ["<advantage in the Pakistani context>", "<advantage>", "<advantage>"],
    "regulatory_considerations": ["<consideration>", "<consideration>", "<consideration>"]
  },
  "competitors": [
    {"name": "<competitor operating in Pakistan>", "strength": "<strength>", "weakness": "<gap>", "market_position": "<Leader | Challenger | Niche>"},
    {"name": "<competitor>", "strength": "<strength>", "weakness": "<gap>", "market_position": "<Leader | Challenger | Niche>"},
    {"name": "<competitor>", "strength": "<strength>", "weakness": "<gap>", "market_position": "<Leader | Challenger | Niche>"}
  ],
  "recommendations": [
    "<actionable recommendation>",
    "<actionable recommendation>",
    "<actionable recommendation>",
    "<immediate next step for the current stage>"
  ]
}

ANALYSIS RULES:
- Be realistic; do not inflate scores.
- Account for local constraints: infrastructure, internet access, payments.
- Consider cultural factors: gender-sensitive care, family involvement, trust in digital health.
- Assess DRAP and PECA 2016 requirements accurately.
- Reflect the local funding landscape: VCs, grants, bootstrapping.
- Use real competitors where possible.
- Recommendations must be concrete and executable.
` + dateFooter,
		Validators: []Validator{
			RequireNonEmpty("Title", func(in Input) string { return in.Title }),
			RequireNonEmpty("CurrentDate", func(in Input) string { return in.CurrentDate }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptDeepAnalysis,
		Version: 1,
		System: `
You are an expert healthcare startup analyst for the Pakistani and South Asian market.
Return ONLY valid JSON responses, no additional text.`,
		User: `
Run a comprehensive deep analysis of the healthcare startup idea below. Ground every section in Pakistan's healthcare market,
its regulators (DRAP, Ministry of Health, PECA 2016), cultural acceptance and the local funding landscape.
` + ideaBlock + `
RETURN JSON WITH EXACTLY THESE KEYS:

{
  "competitors": [
    {"competitor_name": "<name>", "competitor_description": "<description>", "market_position": "<position>", "funding_raised": <usd>, "status": "active", "strengths": ["<strength>"], "weaknesses": ["<weakness>"], "market_share_estimated": <percent>}
  ],
  "market_data": {"market_size_usd": <usd>, "market_growth_rate_percent": <percent>, "market_gaps": ["<gap>"], "market_trends": ["<trend>"], "opportunity_score": <0-100>},
  "failure_cases": [
    {"startup_name": "<name>", "primary_failure_reason": "<reason>", "secondary_failure_reasons": ["<reason>"], "lessons_learned": ["<lesson>"], "preventive_measures": ["<measure>"]}
  ],
  "success_cases": [
    {"startup_name": "<name>", "exit_type": "<acquisition|ipo|operating>", "exit_valuation": <usd>, "success_factors": ["<factor>"], "lessons_learned": ["<lesson>"]}
  ],
  "regulatory_items": [
    {"jurisdiction": "Pakistan", "requirement_name": "<name>", "requirement_description": "<description>", "approval_body": "<DRAP|Ministry of Health|...>", "severity_level": "<critical|high|medium|low>"}
  ],
  "market_trends": [
    {"trend_name": "<name>", "trend_description": "<description>", "relevance_score": <0-100>, "trend_status": "<emerging|growing|mature|declining>"}
  ],
  "funding_sources": [
    {"name": "<name>", "funder_type": "<VC|angel|grant|accelerator>", "category_focus": ["<category>"], "stage_focus": ["<stage>"], "typical_check_size_min": <usd>, "typical_check_size_max": <usd>}
  ],
  "risks": [
    {"risk_type": "<market|regulatory|technical|financial|operational>", "risk_name": "<name>", "risk_description": "<description>", "probability_percent": <0-100>, "impact_level": "<low|medium|high|critical>", "mitigation_strategies": ["<strategy>"]}
  ],
  "ai_insights": [
    {"insight_type": "<opportunity|threat|strength|weakness>", "insight_category": "<market|regulatory|product|team>", "insight_content": "<content>", "confidence_score": <0-1>, "priority_level": "<high|medium|low>"}
  ],
  "strategic_recommendations": [
    {"recommendation_type": "<go-to-market|product|regulatory|funding>", "recommendation_content": "<content>", "priority_level": "<high|medium|low>", "expected_impact_on_score": <points>, "implementation_difficulty": "<easy|medium|hard>"}
  ],
  "customer_segments": [
    {"segment_name": "<name>", "segment_size_estimate": <count>, "willingness_to_pay": <usd>, "pain_points": ["<pain point>"]}
  ],
  "benchmarks": [
    {"metric_name": "<metric>", "median_value": <number>, "best_in_class_value": <number>}
  ],
  "detailed_report": {
    "executive_summary": "<3-4 paragraphs>",
    "market_analysis": {"size": "<text>", "growth": "<text>", "opportunities": ["<opportunity>"]},
    "competitive_analysis": {"landscape": "<text>", "positioning": "<text>", "advantages": ["<advantage>"]},
    "customer_analysis": {"segments": "<text>", "needs": ["<need>"], "acquisition_strategy": "<text>"},
    "risk_assessment": {"critical_risks": ["<risk>"], "mitigation_plan": "<text>"},
    "recommendations": ["<recommendation>"]
  }
}

GUIDELINES:
- 3-5 competitors, 2-3 failure cases, 2-3 success cases, 3-5 regulatory items, 3-5 trends, 3-5 funding sources,
  4-6 risks, 4-6 insights, 5-8 strategic recommendations, 3-4 customer segments, 5-8 benchmarks.
- All monetary values in USD.
- Use realistic Pakistani company names and market data; reference the actual regulatory bodies.
- Include both opportunities and challenges.
` + dateFooter,
		Validators: []Validator{
			RequireNonEmpty("Title", func(in Input) string { return in.Title }),
			RequireNonEmpty("CurrentDate", func(in Input) string { return in.CurrentDate }),
		},
	})
}
