package services

// hvacKnowledgeBase is the embedded engineering corpus: ACCA Manual J/S/D,
// ASHRAE 55/62.2, DOE guidance, and NREL data distilled into retrievable
// topics. Sections cite their source documents.
var hvacKnowledgeBase = []KnowledgeSection{
	{
		Key:    "manualJ",
		Title:  "ACCA Manual J - Residential Load Calculation",
		Source: "ACCA Manual J, 8th Edition",
		Topics: []KnowledgeTopic{
			{
				Key:     "heatLoss",
				Summary: "Manual J provides the industry standard for calculating residential heating and cooling loads.",
				KeyConcepts: []string{
					"Heat loss calculation: Q = U × A × ΔT, where U is U-value, A is area, ΔT is temperature difference",
					"Design conditions: 99% heating design temp and 1% cooling design temp from TMY3 data",
					"Heat loss components: conduction through walls/roof/floor, infiltration, ventilation",
					"U-values vary by construction: R-13 wall = U-0.077, R-30 roof = U-0.033",
					"Infiltration: 0.35 ACH (air changes per hour) typical for tight homes, 0.5-0.7 for average",
					"Infiltration importance: Often the single largest load component in older homes, can be 30-40% of total heating load",
					"Blower Door Test: Manual J requires ACH50 score (air changes per hour at 50 Pascal pressure difference) for accurate calculation",
					"Tight home: ACH50 < 3, Average home: ACH50 3-7, Loose home: ACH50 > 7",
					"Ventilation: ASHRAE 62.2 requires 7.5 CFM per person + 0.03 CFM per sq ft",
				},
				Formulas: []KnowledgeFormula{
					{Name: "totalHeatLoss", Text: "Q_total = Q_conduction + Q_infiltration + Q_ventilation"},
					{Name: "conduction", Text: "Q_cond = Σ(U_i × A_i × ΔT_design)"},
					{Name: "infiltration", Text: "Q_inf = 1.08 × CFM × ΔT × ACH × Volume / 60"},
				},
			},
			{
				Key:     "coolingLoad",
				Summary: "Cooling load includes sensible and latent components.",
				KeyConcepts: []string{
					"Sensible load: temperature reduction (BTU/hr)",
					"Latent load: humidity removal (BTU/hr)",
					"Solar gain: varies by window orientation, shading, glazing type",
					"Internal gains: people (230 BTU/hr sensible, 200 BTU/hr latent per person when sitting), appliances, lighting",
					"Party example: 10 people adds nearly half a ton (4,300 BTU) of cooling load",
					"Design conditions: 1% cooling design temp (typically 90-95°F outdoor, 75°F indoor)",
					"Latent ratio: typically 0.2-0.3 for residential (20-30% of total load is latent)",
				},
			},
			{
				Key:     "sizing",
				Summary: "Manual J determines the required equipment capacity.",
				KeyConcepts: []string{
					"Total load = heating load + cooling load (use larger of the two for sizing)",
					"Safety factors: Manual J does NOT add safety factors - use calculated load directly",
					"Oversizing penalty: 10-15% efficiency loss per 10% oversizing",
					"Undersizing: system runs continuously, poor dehumidification, comfort issues",
					"Zoning: each zone calculated separately, then summed for central system",
				},
			},
		},
	},
	{
		Key:    "manualS",
		Title:  "ACCA Manual S - Residential Equipment Selection",
		Source: "ACCA Manual S",
		Topics: []KnowledgeTopic{
			{
				Key:     "equipmentSelection",
				Summary: "Manual S guides selection of properly sized HVAC equipment based on Manual J loads.",
				KeyConcepts: []string{
					"Select equipment within 15-20% of calculated load (100-115% of load, maximum 120%)",
					"CRITICAL RULE: Equipment should NOT be oversized by more than 15-20% above calculated load",
					"If load calc = 2.8 tons, maximum equipment = 3.36 tons (20% oversizing limit)",
					"Oversizing penalties: >20% causes poor humidity control, short cycling, efficiency loss",
					"Heat pumps: select based on heating load at design temp, verify cooling capacity",
					"Gas furnaces: select based on heating load, verify AFUE rating",
					"Multi-stage equipment: first stage should handle 60-70% of load for efficiency",
				},
			},
		},
	},
	{
		Key:    "manualD",
		Title:  "ACCA Manual D - Residential Duct Design",
		Source: "ACCA Manual D",
		Topics: []KnowledgeTopic{
			{
				Key:     "ductSizing",
				Summary: "Manual D provides duct sizing methodology for proper airflow distribution.",
				KeyConcepts: []string{
					"CFM per ton: 400 CFM per ton for cooling (typical), 350-450 CFM range",
					"Static pressure: 0.5\" WC typical for residential, 0.3-0.6\" acceptable",
					"Friction rate: 0.1\" per 100 ft typical, use friction chart for sizing",
					"Duct sizing: based on CFM, friction rate, and equivalent length",
					"Undersized ducts: high static pressure, poor airflow, noise, efficiency loss",
					"Oversized ducts: low velocity, poor mixing, comfort issues",
				},
			},
			{
				Key:     "airflow",
				Summary: "Proper airflow is critical for system performance.",
				KeyConcepts: []string{
					"Supply air temp: 55-60°F for cooling, 100-120°F for heating",
					"Return air: typically 75°F for cooling, 68°F for heating",
					"Delta T: 18-22°F typical for cooling, 30-50°F for heating",
					"Low airflow symptoms: poor cooling, high head pressure, short cycling",
					"High airflow symptoms: poor dehumidification, drafty, noise",
				},
			},
			{
				Key:     "staticPressure",
				Summary: "Static pressure is critical for proper airflow and system longevity.",
				KeyConcepts: []string{
					"Design static pressure: 0.5\" WC typical for residential systems",
					"Acceptable range: 0.3-0.6\" WC - above 0.6\" is problematic",
					"High MERV filters: Increase static pressure significantly (MERV 13+ can add 0.2-0.3\" WC)",
					"Blower response: High static pressure forces blower to speed up, causing noise and reducing lifespan",
					"Solution: Upgrade to larger filter area, use lower MERV, or redesign ductwork for higher static",
					"Manual D: Duct system must account for filter pressure drop in design",
				},
			},
		},
	},
	{
		Key:    "ashrae55",
		Title:  "ASHRAE Standard 55 - Thermal Environmental Conditions for Human Occupancy",
		Source: "ASHRAE Standard 55-2020",
		Topics: []KnowledgeTopic{
			{
				Key:     "comfortZone",
				Summary: "ASHRAE 55 defines acceptable thermal comfort conditions.",
				KeyConcepts: []string{
					"Operative temperature: average of air temp and mean radiant temp",
					"Winter comfort: 68-74°F operative temp at 30-60% RH",
					"Summer comfort: 73-79°F operative temp at 30-60% RH",
					"PMV/PPD: Predicted Mean Vote / Predicted Percentage Dissatisfied",
					"Acceptable range: 80% of occupants satisfied (PPD ≤ 20%)",
					"Clothing: 1.0 clo (winter), 0.5 clo (summer) typical",
					"Activity: 1.0 met (sedentary), 1.2 met (light activity)",
				},
				Recommendations: []KnowledgeFormula{
					{Name: "winter", Text: "68-72°F for occupied, 62-66°F for unoccupied/sleep"},
					{Name: "summer", Text: "74-78°F for occupied, 78-82°F for unoccupied/sleep"},
					{Name: "humidity", Text: "30-60% RH year-round for comfort and health"},
				},
			},
			{
				Key:     "radiantAsymmetry",
				Summary: "Radiant asymmetry causes discomfort even when air temperature is acceptable.",
				KeyConcepts: []string{
					"Mean Radiant Temperature (MRT): Average temperature of surrounding surfaces",
					"Cold window surfaces: Glass is typically 10-20°F colder than room air in winter",
					"Radiant heat loss: Your body radiates heat to cold surfaces (like windows), making you feel cold",
					"ASHRAE 55 limit: Radiant asymmetry should not exceed 5°F for comfort",
					"Solution: Improve window insulation (double/triple pane, low-E), use window treatments",
					"This is why you feel cold near windows even when thermostat says 72°F",
				},
				Formulas: []KnowledgeFormula{
					{Name: "operativeTemp", Text: "T_operative = (T_air + T_radiant) / 2"},
					{Name: "radiantAsymmetry", Text: "Asymmetry = |T_surface - T_air|"},
				},
			},
		},
	},
	{
		Key:    "ashrae622",
		Title:  "ASHRAE Standard 62.2 - Ventilation and Acceptable Indoor Air Quality",
		Source: "ASHRAE Standard 62.2-2019",
		Topics: []KnowledgeTopic{
			{
				Key:     "ventilationRequirements",
				Summary: "ASHRAE 62.2 sets minimum ventilation rates for residential buildings.",
				KeyConcepts: []string{
					"Whole-house ventilation: 0.03 CFM per sq ft + 7.5 CFM per bedroom",
					"Example: 2000 sq ft, 3 bedrooms = 60 + 22.5 = 82.5 CFM minimum",
					"Local exhaust: kitchen 100 CFM, bathroom 50 CFM (intermittent)",
					"Ventilation can be: exhaust-only, supply-only, or balanced (HRV/ERV)",
					"HRV/ERV: Heat/Energy Recovery Ventilator recovers 70-90% of energy",
					"Infiltration: natural air leakage can count toward ventilation if ≥ 0.35 ACH",
				},
				Formulas: []KnowledgeFormula{
					{Name: "wholeHouse", Text: "Q_vent = 0.03 × A_floor + 7.5 × N_bedrooms (CFM)"},
				},
			},
			{
				Key:     "airQuality",
				Summary: "Proper ventilation maintains indoor air quality.",
				KeyConcepts: []string{
					"CO2 levels: < 1000 ppm acceptable, > 1000 ppm indicates poor ventilation",
					"CO2 above 1000ppm: Cognitive function declines, drowsiness, reduced productivity",
					"Humidity: 30-60% RH prevents mold growth and maintains comfort",
					"Pollutants: VOCs, radon, particulates reduced by proper ventilation",
					"Source control: eliminate sources (smoking, chemicals) before increasing ventilation",
				},
			},
		},
	},
	{
		Key:    "doeGuides",
		Title:  "DOE Energy Efficiency Guides",
		Source: "U.S. Department of Energy",
		Topics: []KnowledgeTopic{
			{
				Key:     "heatPumpEfficiency",
				Summary: "DOE provides guidance on heat pump efficiency and operation.",
				KeyConcepts: []string{
					"HSPF2: Heating Seasonal Performance Factor (new rating system)",
					"HSPF2 ≥ 8.5: ENERGY STAR qualified",
					"COP: Coefficient of Performance = BTU output / BTU input (electric)",
					"COP at 47°F: typically 3.0-4.5 for modern heat pumps",
					"COP degradation: decreases as outdoor temp drops (COP ~2.0 at 17°F)",
					"Aux heat lockout: set to 30-40°F to maximize heat pump efficiency",
				},
			},
			{
				Key:     "thermostatSettings",
				Summary: "DOE recommendations for thermostat programming.",
				KeyConcepts: []string{
					"Setback savings: 1% per degree for 8 hours (heating), 3% per degree (cooling)",
					"Recommended: 68°F winter (occupied), 62°F (unoccupied)",
					"Recommended: 78°F summer (occupied), 85°F (unoccupied)",
					"Programmable thermostats: save 10-15% on heating, 15-20% on cooling",
					"Smart thermostats: additional 8-12% savings through learning and optimization",
				},
			},
		},
	},
	{
		Key:    "nrelData",
		Title:  "NREL Building Energy Optimization and TMY3 Weather Data",
		Source: "National Renewable Energy Laboratory",
		Topics: []KnowledgeTopic{
			{
				Key:     "tmy3Data",
				Summary: "TMY3 (Typical Meteorological Year) provides representative weather data for energy calculations.",
				KeyConcepts: []string{
					"TMY3: 12 months of actual weather data selected to represent typical year",
					"Design temps: 99% heating (1% of hours colder), 1% cooling (1% of hours hotter)",
					"HDD/CDD: Heating/Cooling Degree Days for annual energy estimates",
					"Used in: Manual J load calcs, BEopt energy modeling, system sizing",
				},
			},
			{
				Key:     "balancePoint",
				Summary: "Balance point is the outdoor temperature where heat loss equals heat pump capacity.",
				KeyConcepts: []string{
					"Definition: Outdoor temperature where home's Heat Loss = Heat Pump's Heating Capacity",
					"Below balance point: Heat pump alone cannot maintain temperature, aux heat required",
					"Above balance point: Heat pump can handle heating load without aux heat",
					"Typical range: 25-40°F for most heat pump systems",
					"Critical for sizing: Determines how much aux heat capacity is needed",
				},
				Formulas: []KnowledgeFormula{
					{Name: "balancePoint", Text: "Balance Point = T where Heat_Loss(T) = Heat_Pump_Capacity(T)"},
				},
			},
			{
				Key:     "thermalDecay",
				Summary: "Thermal decay describes how quickly a building loses heat when heating stops.",
				KeyConcepts: []string{
					"Newton's Law of Cooling: Rate of temperature change is proportional to temperature difference",
					"Thermal decay constant: k = Heat_Loss_Factor / (Mass × Specific_Heat)",
					"Example: If heat loss = 500 BTU/hr/°F and thermal mass = 50,000 BTU/°F, decay = 0.01 °F/min",
					"Application: Used to calculate how long building takes to cool down during setbacks",
				},
				Formulas: []KnowledgeFormula{
					{Name: "newtonsLaw", Text: "dT/dt = -k × (T - T_ambient)"},
					{Name: "timeToCool", Text: "t = -ln((T_final - T_ambient) / (T_initial - T_ambient)) / k"},
				},
			},
		},
	},
	{
		Key:    "troubleshooting",
		Title:  "Troubleshooting & Fault Codes",
		Source: "Service Manuals, Service Facts, Fault Code Guides, Technical Service Bulletins",
		Topics: []KnowledgeTopic{
			{
				Key:     "faultCodes",
				Summary: "Fault codes indicate specific system problems requiring diagnosis.",
				KeyConcepts: []string{
					"Format varies: LED flashes, error codes (E1, E5, etc.), alphanumeric (dF, Lo, Hi)",
					"Common codes: E1 = sensor fault, E5 = communication error, dF = defrost fault, Lo = low pressure",
					"Brand-specific: Each manufacturer uses different fault code systems",
					"Service manuals: Complete fault code lists available in manufacturer service manuals",
				},
			},
			{
				Key:     "coldAirInHeating",
				Summary: "Heat pump blowing cold air in heating mode has several possible causes.",
				KeyConcepts: []string{
					"Defrost cycle: Normal - heat pump reverses to defrost outdoor coil (5-10 minutes)",
					"Outdoor temp too low: Below balance point, system may need aux heat",
					"Reversing valve stuck: Valve not switching properly, requires service",
					"Low refrigerant: Insufficient charge causes poor heating performance",
					"Outdoor coil frozen: Ice buildup prevents heat transfer, check defrost operation",
					"Thermostat setting: Verify heat mode is selected, not cool or auto",
				},
			},
		},
	},
}
