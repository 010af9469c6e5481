package render

// React Native + TypeScript output templates. Each renders with a
// templateData or screenData value.

const appTemplate = `import React from 'react';
import { NavigationContainer } from '@react-navigation/native';
import { OnboardingNavigator } from './src/onboarding/OnboardingNavigator';

export default function App() {
  return (
    <NavigationContainer>
      <OnboardingNavigator />
    </NavigationContainer>
  );
}
`

const navigatorTemplate = `import React from 'react';
import { createNativeStackNavigator } from '@react-navigation/native-stack';
{{- range .Screens}}
import { {{.Component}} } from './screens/{{.Component}}';
{{- end}}

export type OnboardingStackParamList = {
{{- range .Screens}}
  {{.Component}}: undefined;
{{- end}}
};

const Stack = createNativeStackNavigator<OnboardingStackParamList>();

export function OnboardingNavigator() {
  return (
    <Stack.Navigator screenOptions={{"{{"}} headerShown: false {{"}}"}}>
{{- range .Screens}}
      <Stack.Screen name="{{.Component}}" component={{"{"}}{{.Component}}{{"}"}} />
{{- end}}
    </Stack.Navigator>
  );
}
`

const screenTemplate = `import React from 'react';
import { View, Text, Pressable{{if .Screen.Image}}, Image{{end}} } from 'react-native';
import { useNavigation } from '@react-navigation/native';
import { theme } from '../theme';
{{- if .IsLast}}
import { markOnboardingComplete } from '../storage';
{{- end}}

// {{.Screen.Type}} screen: {{.Screen.ID}}
export function {{.Component}}() {
  const navigation = useNavigation<any>();

  const advance = {{if .IsLast}}async () => {
    await markOnboardingComplete();
  }{{else}}() => {
    navigation.navigate('{{.NextComponent}}');
  }{{end}};

  return (
    <View style={{"{{"}} flex: 1, backgroundColor: theme.background, padding: 24, justifyContent: 'center' {{"}}"}}>
{{- if .Screen.Image}}
      <Image source={require('../../assets/{{.Screen.Image}}')} style={{"{{"}} alignSelf: 'center' {{"}}"}} />
{{- end}}
      <Text style={{"{{"}} fontSize: 28, fontWeight: '700', color: theme.text {{"}}"}}>{{.Screen.Title}}</Text>
{{- if .Screen.Subtitle}}
      <Text style={{"{{"}} fontSize: 16, marginTop: 8, color: theme.text {{"}}"}}>{{.Screen.Subtitle}}</Text>
{{- end}}
      <Pressable
        onPress={advance}
        style={{"{{"}} marginTop: 32, backgroundColor: theme.primary, borderRadius: 12, padding: 16 {{"}}"}}>
        <Text style={{"{{"}} color: '#FFFFFF', textAlign: 'center', fontWeight: '600' {{"}}"}}>{{.CTAText}}</Text>
      </Pressable>
{{- if .Screen.Skippable}}
      <Pressable onPress={advance} style={{"{{"}} marginTop: 12 {{"}}"}}>
        <Text style={{"{{"}} color: theme.primary, textAlign: 'center' {{"}}"}}>Skip</Text>
      </Pressable>
{{- end}}
    </View>
  );
}
`

const themeTemplate = `export const theme = {
  primary: '{{.Theme.Primary}}',
  background: '{{.Theme.Background}}',
  accent: '{{.Theme.Accent}}',
  text: '{{.Theme.Text}}',
};
`

const storageTemplate = `import AsyncStorage from '@react-native-async-storage/async-storage';

const KEY = '@{{.Slug}}/onboarding-complete';

export async function markOnboardingComplete(): Promise<void> {
  await AsyncStorage.setItem(KEY, 'true');
}

export async function isOnboardingComplete(): Promise<boolean> {
  return (await AsyncStorage.getItem(KEY)) === 'true';
}
`

const packageJSONTemplate = `{
  "name": "{{.Slug}}",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "@react-native-async-storage/async-storage": "^1.23.1",
    "@react-navigation/native": "^6.1.17",
    "@react-navigation/native-stack": "^6.9.26",
    "react": "18.2.0",
    "react-native": "0.74.0"
  }
}
`
