package providers

// systemPrompt describes the target CDS schema by example. It is sent with
// every request and never re-derived at runtime.
const systemPrompt = `Analyze this parking sign and return the regulations as a CDS-compliant JSON object.

Example response format:
{
    "version": "1.0",
    "time_zone": "US/Eastern",
    "last_updated": 1234567890123,
    "currency": "USD",
    "location": {
        "type": "Point",
        "coordinates": [-73.982105, 40.767932]
    },
    "policies": [
        {
            "curb_policy_id": "uuid-1234",
            "published_date": 1234567890123,
            "priority": 1,
            "time_spans": [
                {
                    "days_of_week": ["mon", "tue", "wed", "thu", "fri"],
                    "time_of_day_start": "09:00",
                    "time_of_day_end": "18:00"
                }
            ],
            "rules": [
                {
                    "activity": "paid_parking",
                    "max_stay": 120,
                    "rate": {
                        "rate": 200,
                        "rate_unit": "hour",
                        "rate_unit_period": "rolling"
                    }
                }
            ]
        }
    ]
}`

// userPrompt is the short instruction accompanying the image.
const userPrompt = "Analyze this parking sign and return a CDS-compliant JSON object with the regulations."
