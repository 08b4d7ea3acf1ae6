package main

import "github.com/strivetech/sales-ai-platform/internal/rag"

// striveTrainingData is the curated example set for the "strive" industry.
// Each entry is a successful conversation pattern with a measured conversion
// score; together they bootstrap retrieval before organic history exists.
var striveTrainingData = []rag.ExampleRecord{
	{
		UserInput:         "We're losing customers every month and don't know why",
		AssistantResponse: "I understand how frustrating that is - customer churn can feel like watching revenue slip away without knowing how to stop it.\n\nCan I ask, what percentage of customers are you losing monthly? And do you have any data on why they're leaving?\n\nOur Churn Prediction AI helps companies identify at-risk customers 30-60 days before they leave, which gives you time to intervene. It's helped companies reduce churn by 25-35% within 90 days.",
		ProblemType:       "churn",
		SolutionType:      "churn_prediction",
		ConversationStage: rag.StageQualifying,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.95,
	},
	{
		UserInput:         "Customers keep switching to competitors",
		AssistantResponse: "That's tough - especially when you're not sure what's driving them away.\n\nLet me ask: how much does it cost you to acquire a new customer compared to retaining an existing one?\n\nOur Customer Retention AI can predict which customers are at risk and why. Most clients see the system pay for itself within 4-6 months through saved retention costs.\n\nLet's set up a meeting to discuss how this would work specifically for your business: https://calendly.com/strivetech",
		ProblemType:       "churn",
		SolutionType:      "churn_prediction",
		ConversationStage: rag.StageSolutioning,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.92,
	},
	{
		UserInput:         "Our support team is drowning in tickets",
		AssistantResponse: "I hear you - when support volume outpaces your team's capacity, it affects everything from response times to employee burnout.\n\nHow many tickets are you handling daily? And what percentage are repetitive questions?\n\nOur Support Automation typically resolves 60% of tickets instantly without human intervention. That frees up your team for complex issues while customers get instant answers 24/7.",
		ProblemType:       "support",
		SolutionType:      "support_automation",
		ConversationStage: rag.StageQualifying,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.88,
	},
	{
		UserInput:         "We need help with customer service scaling",
		AssistantResponse: "Scaling support is a common challenge - hiring more people isn't always the answer when the volume keeps growing.\n\nOur Intelligent Support Automation handles routine inquiries automatically while routing complex issues to your team with full context. Companies typically see 50-70% cost reduction while improving satisfaction scores.\n\nLet's set up a meeting to discuss how this would work specifically for your business: https://calendly.com/strivetech",
		ProblemType:       "support",
		SolutionType:      "support_automation",
		ConversationStage: rag.StageSolutioning,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.90,
	},
	{
		UserInput:         "Too many defects are getting through our QA",
		AssistantResponse: "Quality escapes are costly - both in rework and reputation. I bet that's causing some serious headaches.\n\nWhat's your current defect escape rate? And are you able to inspect 100% of products or just sampling?\n\nOur Computer Vision Quality Control inspects every single product at 99.7% accuracy - 10x faster than manual inspection. It catches micro-defects that humans miss.",
		ProblemType:       "quality",
		SolutionType:      "quality_control",
		ConversationStage: rag.StageQualifying,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.93,
	},
	{
		UserInput:         "Manual inspection is too slow and inconsistent",
		AssistantResponse: "Exactly - human inspection has inherent limitations in speed, consistency, and the ability to catch subtle defects.\n\nOur Vision Quality Control system processes products 10x faster than manual inspection while maintaining 99.7% accuracy. Plus it learns your specific quality standards over time.\n\nMost manufacturers see 40-60% reduction in quality costs within the first 6 months.\n\nLet's set up a meeting to discuss how this would work specifically for your business: https://calendly.com/strivetech",
		ProblemType:       "quality",
		SolutionType:      "quality_control",
		ConversationStage: rag.StageSolutioning,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.91,
	},
	{
		UserInput:         "Equipment keeps breaking down unexpectedly",
		AssistantResponse: "Unexpected downtime is brutal - every hour of stopped production adds up fast.\n\nWhat's the typical cost of an hour of downtime for you? And do you collect any sensor data from your equipment?\n\nOur Predictive Maintenance AI analyzes equipment patterns to predict failures 2-4 weeks in advance. Companies typically reduce unplanned downtime by 45%.",
		ProblemType:       "maintenance",
		SolutionType:      "predictive_maintenance",
		ConversationStage: rag.StageQualifying,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.89,
	},
	{
		UserInput:         "We're seeing suspicious transactions",
		AssistantResponse: "Fraud is urgent - every day of delay means more losses. I understand you need to act fast.\n\nWhat types of fraud are you experiencing? And what's your current fraud loss rate?\n\nOur Fraud Detection AI catches 94% of fraud attempts in real-time while reducing false positives by 70%. It learns new fraud patterns automatically.\n\nGiven the urgency, let's get you on a call this week: https://calendly.com/strivetech",
		ProblemType:       "fraud",
		SolutionType:      "fraud_detection",
		ConversationStage: rag.StageSolutioning,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.94,
	},
	{
		UserInput:         "Our sales forecasts are always wrong",
		AssistantResponse: "Inaccurate forecasts make everything harder - from inventory planning to resource allocation.\n\nHow accurate are your current forecasts? And how far in advance do you need to predict?\n\nOur Revenue Forecasting System achieves 92-95% accuracy by analyzing historical patterns, seasonal trends, and external factors. Most companies see 60% reduction in forecast variance.\n\nLet's set up a meeting to discuss how this would work specifically for your business: https://calendly.com/strivetech",
		ProblemType:       "revenue",
		SolutionType:      "revenue_forecasting",
		ConversationStage: rag.StageSolutioning,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.87,
	},
	{
		UserInput:         "How much does this cost?",
		AssistantResponse: "Great question. Investment depends entirely on your volume and current costs. For context, most clients see 10-20x ROI within the first year.\n\nWhat matters most is the business impact. For example, if you're losing $50k monthly to churn, a system that cuts that by 30% pays for itself in a few months.\n\nLet's hop on a quick call to discuss your specific situation and I can give you accurate numbers: https://calendly.com/strivetech",
		ProblemType:       "pricing_question",
		SolutionType:      "roi_focused",
		ConversationStage: rag.StageBooking,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.75,
	},
	{
		UserInput:         "What's the price range?",
		AssistantResponse: "Pricing is customized based on the value delivered. We have solutions from pilot projects to enterprise deployments.\n\nWhat's more important than cost is ROI - typically 10-20x within year one. For a business your size, the system usually pays for itself within 4-6 months through saved costs.\n\nWant to see the specific numbers for your situation? Let's schedule a quick call: https://calendly.com/strivetech",
		ProblemType:       "pricing_question",
		SolutionType:      "roi_focused",
		ConversationStage: rag.StageBooking,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.72,
	},
	{
		UserInput:         "How do you implement this?",
		AssistantResponse: "Implementation is highly customized to your specific data infrastructure and business processes. The exact approach depends on factors like your current tech stack, data volume, and integration requirements.\n\nOur proprietary methodology has taken years to perfect and involves dozens of decision points specific to your environment. I'd need to understand your specifics first.\n\nLet's set up a meeting where I can walk you through the implementation roadmap for your exact situation: https://calendly.com/strivetech",
		ProblemType:       "implementation_question",
		SolutionType:      "consultation_required",
		ConversationStage: rag.StageBooking,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.80,
	},
	{
		UserInput:         "We've tried AI before and it didn't work",
		AssistantResponse: "I hear that often - and honestly, most DIY AI projects fail because they lack the domain expertise and infrastructure needed.\n\nWhat specifically didn't work? Was it accuracy, integration issues, or something else?\n\nOur advantage is we've built these exact solutions dozens of times across your industry. We know the common failure points and how to avoid them. Plus, our systems are trained on industry-specific patterns, not generic data.\n\nLet's discuss what went wrong before and how we'd approach it differently: https://calendly.com/strivetech",
		ProblemType:       "skepticism",
		SolutionType:      "credibility_building",
		ConversationStage: rag.StageQualifying,
		Outcome:           rag.OutcomeBookingCompleted,
		ConversionScore:   0.78,
	},
	{
		UserInput:         "Just looking at AI options",
		AssistantResponse: "Smart to explore! AI can transform operations, but the key is finding the right application for your specific challenges.\n\nWhat's the biggest operational challenge your team is facing right now? Or what manual process takes up the most time?\n\nI can help you identify where AI would have the most impact for your business.",
		ProblemType:       "discovery",
		SolutionType:      "qualification",
		ConversationStage: rag.StageDiscovery,
		Outcome:           rag.OutcomeInProgress,
		ConversionScore:   0.60,
	},
}
