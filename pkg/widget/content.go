package widget

// Built-in site content. Replaced wholesale when a catalog file is configured.

var (
	btnScheduleNow  = ActionButton{Label: "Schedule Now", To: "/platform-demo", Variant: VariantPrimary}
	btnTalkToSales  = ActionButton{Label: "Talk to Sales", To: "/contact", Variant: VariantSecondary}
	btnAssessment   = ActionButton{Label: "Take the Assessment", To: "/assessment", Variant: VariantPrimary}
	btnPricing      = ActionButton{Label: "View Pricing", To: "/pricing", Variant: VariantSecondary}
	btnCaseStudies  = ActionButton{Label: "Read Case Studies", To: "/case-studies", Variant: VariantSecondary}
	btnSolutions    = ActionButton{Label: "Explore Solutions", To: "/solutions", Variant: VariantSecondary}
	btnWatchDemo    = ActionButton{Label: "Watch the Demo", Action: ActionScrollToDemo, Variant: VariantPrimary}
	btnContactForm  = ActionButton{Label: "Contact Us", To: "/contact", Variant: VariantPrimary}
	btnSpecialist   = ActionButton{Label: "Talk to a Specialist", To: "/contact", Variant: VariantPrimary}
	btnBookDemo     = ActionButton{Label: "Book a Demo", To: "/platform-demo", Variant: VariantSecondary}
	btnRequestQuote = ActionButton{Label: "Request a Quote", To: "/demo-request", Variant: VariantPrimary}
)

// DefaultCatalog returns the built-in page contexts and response tables.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Contexts:  defaultContexts(),
		Responses: defaultResponses(),
		Fallback: Response{
			Content: "Great question! I'd love to help with that. Let me connect you with a specialist who can give you a detailed answer tailored to your business.",
			Actions: []ActionButton{btnSpecialist, btnBookDemo},
		},
	}
}

func defaultContexts() map[string]PageContext {
	return map[string]PageContext{
		"/": {
			Topic:    GeneralTopic,
			Greeting: "Hi there! 👋 I'm the AI assistant. Looking to put AI to work in your business? I can point you to the right solution, pricing or a live demo.",
			QuickReplies: []string{
				"What services do you offer?",
				"Schedule a demo",
				"How much does it cost?",
				"Show me case studies",
			},
		},
		"/solutions": {
			Topic:    "solutions",
			Greeting: "Exploring our solutions? I can explain how our automation, analytics and custom AI agents fit your workflows.",
			QuickReplies: []string{
				"Tell me about automation",
				"Do you build custom AI agents?",
				"Which industries do you serve?",
				"Schedule a demo",
			},
		},
		"/pricing": {
			Topic:    "pricing",
			Greeting: "Questions about pricing? I can walk you through our engagement models and what's included in each plan.",
			QuickReplies: []string{
				"What's included in each plan?",
				"Do you offer a pilot?",
				"What is the ROI?",
				"Talk to sales",
			},
		},
		"/contact": {
			Topic:    "contact",
			Greeting: "Ready to talk? Leave your details in the form, or ask me anything while you're here. A consultant usually replies within one business day.",
			QuickReplies: []string{
				"How fast will you respond?",
				"Can I book a call directly?",
				"Where are you located?",
			},
		},
		"/assessment": {
			Topic:    "assessment",
			Greeting: "The AI readiness assessment takes about five minutes. Want to know what it covers before you start?",
			QuickReplies: []string{
				"How long does it take?",
				"What do I get at the end?",
				"Is it free?",
			},
		},
		"/platform-demo": {
			Topic:    "demo",
			Greeting: "Welcome to the platform demo! I can show you the highlights or book a guided walkthrough with our team.",
			QuickReplies: []string{
				"Show me the demo",
				"Book a guided walkthrough",
				"Which integrations are supported?",
			},
		},
		"/demo-request": {
			Topic:    "demo",
			Greeting: "Requesting a demo? Tell me a little about your use case and I'll make sure the right consultant joins the call.",
			QuickReplies: []string{
				"Book a guided walkthrough",
				"Which integrations are supported?",
			},
		},
		"/case-studies": {
			Topic:    "case-studies",
			Greeting: "Curious about results? Our case studies cover retail, logistics, healthcare and financial services.",
			QuickReplies: []string{
				"Show me retail results",
				"Any healthcare examples?",
				"What ROI do clients see?",
			},
		},
		"/about": {
			Topic:    GeneralTopic,
			Greeting: "Want to know more about the team? We're a group of ML engineers, data strategists and product people who ship AI into production.",
			QuickReplies: []string{
				"Who is on the team?",
				"What services do you offer?",
				"Schedule a demo",
			},
		},
	}
}

func defaultResponses() map[string]ResponseTable {
	return map[string]ResponseTable{
		GeneralTopic: {
			{Keyword: "schedule a demo", Response: Response{
				Content: "I'd be happy to set up a demo! Pick a time that works for you and one of our AI consultants will walk you through the platform with your use case in mind.",
				Actions: []ActionButton{btnScheduleNow, btnTalkToSales},
			}},
			{Keyword: "services", Response: Response{
				Content: "We help companies adopt AI end to end: **AI strategy & readiness**, **process automation**, **predictive analytics** and **custom AI agents**. Which one sounds closest to what you need?",
				Actions: []ActionButton{btnSolutions, btnAssessment},
			}},
			{Keyword: "cost", Response: Response{
				Content: "Engagements start with a fixed-price discovery sprint, then move to project or retainer pricing depending on scope.",
				Actions: []ActionButton{btnPricing, btnTalkToSales},
			}},
			{Keyword: "price", Response: Response{
				Content: "Engagements start with a fixed-price discovery sprint, then move to project or retainer pricing depending on scope.",
				Actions: []ActionButton{btnPricing, btnTalkToSales},
			}},
			{Keyword: "case stud", Response: Response{
				Content: "Our clients typically see 30-60% time savings on automated workflows. Here are a few stories you might like.",
				Actions: []ActionButton{btnCaseStudies},
			}},
			{Keyword: "demo", Response: Response{
				Content: "You can watch a short product demo right on this page, or book a live session with our team.",
				Actions: []ActionButton{btnWatchDemo, btnScheduleNow},
			}},
			{Keyword: "team", Response: Response{
				Content: "Our team combines ML engineers, data strategists and change-management consultants who have shipped AI for enterprises and startups alike.",
			}},
			{Keyword: "contact", Response: Response{
				Content: "You can reach us through the contact form, and a consultant will get back to you within one business day.",
				Actions: []ActionButton{btnContactForm},
			}},
			{Keyword: "hello", Response: Response{
				Content: "Hello! What brings you here today? I can help with services, pricing or booking a demo.",
			}},
		},
		"solutions": {
			{Keyword: "automation", Response: Response{
				Content: "Our process automation practice combines document AI, workflow orchestration and human-in-the-loop review. Typical projects go live in 6-10 weeks.",
				Actions: []ActionButton{btnScheduleNow, btnCaseStudies},
			}},
			{Keyword: "custom ai agent", Response: Response{
				Content: "Yes! We design and deploy custom AI agents that plug into your CRM, helpdesk and internal tools, with guardrails and monitoring built in.",
				Actions: []ActionButton{btnScheduleNow, btnTalkToSales},
			}},
			{Keyword: "industr", Response: Response{
				Content: "We work most often with retail, logistics, healthcare and financial services, but our playbooks adapt to most data-rich industries.",
				Actions: []ActionButton{btnCaseStudies},
			}},
			{Keyword: "analytics", Response: Response{
				Content: "Our predictive analytics offering covers demand forecasting, churn prediction and pricing optimisation on top of your existing data stack.",
				Actions: []ActionButton{btnAssessment},
			}},
		},
		"pricing": {
			{Keyword: "included", Response: Response{
				Content: "Every plan includes a dedicated consultant, solution design, implementation and 30 days of post-launch support. Larger plans add MLOps and training.",
				Actions: []ActionButton{btnRequestQuote, btnTalkToSales},
			}},
			{Keyword: "pilot", Response: Response{
				Content: "Yes, we offer a 4-week pilot so you can validate value on a real use case before committing to a full rollout.",
				Actions: []ActionButton{btnRequestQuote},
			}},
			{Keyword: "roi", Response: Response{
				Content: "Most clients recover their investment within 6-9 months. The ROI calculator on this page gives you an estimate for your own numbers.",
				Actions: []ActionButton{btnAssessment},
			}},
			{Keyword: "talk to sales", Response: Response{
				Content: "Our sales team can put together a tailored proposal for you.",
				Actions: []ActionButton{btnTalkToSales},
			}},
		},
		"contact": {
			{Keyword: "how fast", Response: Response{
				Content: "We reply to every enquiry within one business day, usually much sooner.",
			}},
			{Keyword: "book a call", Response: Response{
				Content: "Absolutely. Pick a slot on the demo page and it goes straight into a consultant's calendar.",
				Actions: []ActionButton{btnScheduleNow},
			}},
			{Keyword: "located", Response: Response{
				Content: "We're a remote-first team with consultants across North America and Europe, so we can work in your time zone.",
			}},
		},
		"assessment": {
			{Keyword: "how long", Response: Response{
				Content: "About five minutes: twelve questions on data, processes, people and goals.",
			}},
			{Keyword: "get at the end", Response: Response{
				Content: "You get an AI readiness score, a breakdown per dimension and three recommended next steps for your organisation.",
			}},
			{Keyword: "free", Response: Response{
				Content: "Yes, the assessment is completely free and there's no obligation.",
			}},
		},
		"demo": {
			{Keyword: "show me the demo", Response: Response{
				Content: "Here you go! The walkthrough below covers data ingestion, agent configuration and the analytics dashboard.",
				Actions: []ActionButton{btnWatchDemo},
			}},
			{Keyword: "guided walkthrough", Response: Response{
				Content: "Great choice. A guided walkthrough takes 30 minutes and is tailored to your use case.",
				Actions: []ActionButton{btnScheduleNow},
			}},
			{Keyword: "integration", Response: Response{
				Content: "We integrate with Salesforce, HubSpot, Zendesk, Slack, Snowflake and most REST or SQL data sources.",
				Actions: []ActionButton{btnTalkToSales},
			}},
		},
		"case-studies": {
			{Keyword: "retail", Response: Response{
				Content: "A national retailer cut stock-outs by 35% with our demand forecasting models.",
				Actions: []ActionButton{btnCaseStudies},
			}},
			{Keyword: "healthcare", Response: Response{
				Content: "A regional hospital network automated 70% of its intake paperwork with document AI.",
				Actions: []ActionButton{btnCaseStudies},
			}},
			{Keyword: "roi", Response: Response{
				Content: "Across our case studies, clients report payback in 6-9 months on average.",
				Actions: []ActionButton{btnAssessment},
			}},
		},
	}
}
